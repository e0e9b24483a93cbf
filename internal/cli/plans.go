package cli

import (
	"alcyxob/plan-admin/internal/catalog"
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/planadmin"
	"alcyxob/plan-admin/internal/session"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// catalogKit describes how planctl handles one catalog.
type catalogKit[P domain.PlanRecord] struct {
	catalog   domain.Catalog
	short     string
	workspace func(*catalog.Client, session.Session) *planadmin.Workspace[P]
	headers   []string
	row       func(P) []string
}

var academyKit = catalogKit[domain.AcademyPlan]{
	catalog:   domain.CatalogAcademy,
	short:     "Manage academy membership plans",
	workspace: planadmin.Academy,
	headers:   []string{"ID", "NAME", "AMOUNT", "DAYS", "SPORT", "ACTIVE"},
	row: func(p domain.AcademyPlan) []string {
		return []string{p.ID.Hex(), p.Name, formatAmount(p.Amount), strconv.Itoa(p.PlanLimit), string(p.Sport), activeLabel(p.Active)}
	},
}

var turfKit = catalogKit[domain.TurfPlan]{
	catalog:   domain.CatalogTurf,
	short:     "Manage turf booking plans",
	workspace: planadmin.Turf,
	headers:   []string{"ID", "NAME", "CATEGORY", "SPORT", "AMOUNT", "DURATION", "WINDOW", "ACTIVE"},
	row: func(p domain.TurfPlan) []string {
		return []string{
			p.ID.Hex(), p.Name, string(p.Category), string(p.Sport), formatAmount(p.Amount),
			p.Duration().String(), string(p.From) + "-" + string(p.To), activeLabel(p.Active),
		}
	},
}

func formatAmount(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func newCatalogCmd[P domain.PlanRecord](opts *options, kit catalogKit[P]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kit.catalog),
		Short: kit.short,
		Args:  cobra.NoArgs,
	}

	open := func() (*backend, *planadmin.Workspace[P], error) {
		b, err := newBackend(opts)
		if err != nil {
			return nil, nil, err
		}
		return b, kit.workspace(b.client, b.session), nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog's plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ws, err := open()
			if err != nil {
				return err
			}
			if err := ws.Refresh(cmd.Context()); err != nil {
				return err
			}
			return printPlans(cmd, opts, kit, ws.Cache.Plans())
		},
	}

	var createSets []string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plan from --set field=value pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ws, err := open()
			if err != nil {
				return err
			}
			if err := ws.Form.OpenForCreate(); err != nil {
				return err
			}
			return submitForm(cmd, opts, ws, createSets, "Created")
		},
	}
	createCmd.Flags().StringArrayVar(&createSets, "set", nil, "Field assignment as field=value (repeatable)")

	var editSets []string
	editCmd := &cobra.Command{
		Use:   "edit <plan-id>",
		Short: "Edit a plan; unspecified fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			_, ws, err := open()
			if err != nil {
				return err
			}
			if err := ws.Edit(cmd.Context(), id); err != nil {
				return err
			}
			return submitForm(cmd, opts, ws, editSets, "Updated")
		},
	}
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "Field assignment as field=value (repeatable)")

	toggleCmd := &cobra.Command{
		Use:   "toggle <plan-id>",
		Short: "Flip a plan between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			_, ws, err := open()
			if err != nil {
				return err
			}
			plan, err := ws.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printer{cmd.OutOrStdout()}.json(plan)
			}
			printer{cmd.OutOrStdout()}.success("Plan %s is now %s", plan.PlanName(), activeLabel(plan.IsActive()))
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot the catalog to object storage and print a download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend(opts)
			if err != nil {
				return err
			}
			result, err := b.client.Export(cmd.Context(), b.session, kit.catalog)
			if err != nil {
				return err
			}
			p := printer{cmd.OutOrStdout()}
			if opts.jsonOutput {
				return p.json(result)
			}
			p.success("Exported %s", countOf(result.Count, "plan", "plans"))
			p.labelValue("Key", result.Key)
			p.labelValue("URL", result.URL)
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd, editCmd, toggleCmd, exportCmd)
	return cmd
}

// submitForm applies field=value assignments to the open form and submits.
func submitForm[P domain.PlanRecord](cmd *cobra.Command, opts *options, ws *planadmin.Workspace[P], sets []string, verb string) error {
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok {
			ws.Form.Cancel()
			return fmt.Errorf("invalid --set %q, want field=value", set)
		}
		if err := ws.Form.SetField(strings.TrimSpace(name), value); err != nil {
			ws.Form.Cancel()
			return err
		}
	}
	saved, err := ws.Form.Submit(cmd.Context())
	if err != nil {
		return err
	}
	p := printer{cmd.OutOrStdout()}
	if opts.jsonOutput {
		return p.json(saved)
	}
	p.success("%s plan %s (%s)", verb, saved.PlanName(), saved.PlanID().Hex())
	return nil
}

func printPlans[P domain.PlanRecord](cmd *cobra.Command, opts *options, kit catalogKit[P], plans []P) error {
	p := printer{cmd.OutOrStdout()}
	if opts.jsonOutput {
		if plans == nil {
			plans = []P{}
		}
		return p.json(plans)
	}
	if len(plans) == 0 {
		p.empty(fmt.Sprintf("No %s plans yet", kit.catalog))
		return nil
	}
	rows := make([][]string, len(plans))
	for i, plan := range plans {
		rows[i] = kit.row(plan)
	}
	p.table(kit.headers, rows)
	return nil
}

func parsePlanID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid plan id %q", catalog.ErrNotFound, s)
	}
	return id, nil
}
