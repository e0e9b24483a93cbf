package cli

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/planadmin"
	"alcyxob/plan-admin/internal/planform"
	"alcyxob/plan-admin/internal/visibility"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

func newConsoleCmd(opts *options) *cobra.Command {
	var catalogName string
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Interactive plan editor for one catalog",
		Long: `console opens an interactive session on one catalog. Plans are edited
through a single form that is opened with "new" or "edit <id>", filled with
"set <field> <value>" and saved with "submit". Type "help" for all commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := domain.ParseCatalog(catalogName)
			if err != nil {
				return err
			}
			b, err := newBackend(opts)
			if err != nil {
				return err
			}
			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			switch cat {
			case domain.CatalogAcademy:
				c := newConsole(academyKit, planadmin.Academy(b.client, b.session), out)
				c.panels.Register(visibility.PanelPlans, false, c.loadPlans)
				c.panels.Register(visibility.PanelTrainees, true, c.showTrainees)
				return c.run(cmd.Context(), in)
			default:
				c := newConsole(turfKit, planadmin.Turf(b.client, b.session), out)
				c.panels.Register(visibility.PanelPlans, true, c.loadPlans)
				c.panels.Register(visibility.PanelBookings, false, func(ctx context.Context) error {
					bookings, err := b.client.ListBookings(ctx, b.session)
					if err != nil {
						return err
					}
					c.p.section("Bookings")
					return printBookings(c.p, false, bookings)
				})
				return c.run(cmd.Context(), in)
			}
		},
	}
	cmd.Flags().StringVar(&catalogName, "catalog", string(domain.CatalogTurf), "Catalog to manage: academy or turf")
	return cmd
}

type console[P domain.PlanRecord] struct {
	kit    catalogKit[P]
	ws     *planadmin.Workspace[P]
	panels *visibility.Controller
	p      printer
}

func newConsole[P domain.PlanRecord](kit catalogKit[P], ws *planadmin.Workspace[P], out io.Writer) *console[P] {
	return &console[P]{kit: kit, ws: ws, panels: visibility.New(), p: printer{out}}
}

func (c *console[P]) run(ctx context.Context, in io.Reader) error {
	c.p.section(fmt.Sprintf("%s plans console", c.kit.catalog))
	if err := c.panels.Mount(ctx); err != nil {
		c.p.error(err)
	}

	scanner := bufio.NewScanner(in)
	for {
		_, _ = infoColor.Fprint(c.p.w, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		err := c.exec(ctx, fields[0], fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			c.p.error(err)
		}
	}
}

func (c *console[P]) exec(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "help", "?":
		c.help()
		return nil
	case "quit", "exit":
		return errQuit
	case "show", "hide":
		panel, err := c.panelArg(args)
		if err != nil {
			return err
		}
		if verb == "hide" {
			return c.panels.Hide(panel)
		}
		return c.panels.Show(ctx, panel)
	case "toggle":
		if len(args) != 1 {
			return errors.New("usage: toggle <panel> | toggle <plan-id>")
		}
		if panel := visibility.Panel(args[0]); c.isPanel(panel) {
			visible, err := c.panels.Toggle(ctx, panel)
			if !visible {
				c.p.empty(fmt.Sprintf("%s hidden", panel))
			}
			return err
		}
		id, err := parsePlanID(args[0])
		if err != nil {
			return err
		}
		plan, err := c.ws.Toggle(ctx, id)
		if err != nil {
			return err
		}
		c.p.success("Plan %s is now %s", plan.PlanName(), activeLabel(plan.IsActive()))
		c.renderPlans()
		return nil
	case "list":
		if !c.panels.Visible(visibility.PanelPlans) {
			c.p.warning("Plans panel is hidden; use \"show plans\"")
			return nil
		}
		c.renderPlans()
		return nil
	case "refresh":
		return c.loadPlans(ctx)
	case "new":
		if err := c.ws.Form.OpenForCreate(); err != nil {
			return err
		}
		c.renderDraft()
		return nil
	case "edit":
		if len(args) != 1 {
			return errors.New("usage: edit <plan-id>")
		}
		id, err := parsePlanID(args[0])
		if err != nil {
			return err
		}
		if err := c.ws.Edit(ctx, id); err != nil {
			return err
		}
		c.renderDraft()
		return nil
	case "set":
		if len(args) < 1 {
			return errors.New("usage: set <field> <value>")
		}
		return c.ws.Form.SetField(args[0], strings.Join(args[1:], " "))
	case "draft":
		c.renderDraft()
		return nil
	case "submit":
		saved, err := c.ws.Form.Submit(ctx)
		if err != nil {
			return err
		}
		c.p.success("Saved plan %s (%s)", saved.PlanName(), saved.PlanID().Hex())
		c.renderPlans()
		return nil
	case "cancel":
		c.ws.Form.Cancel()
		c.p.empty("Draft discarded")
		return nil
	}
	return fmt.Errorf("unknown command %q, type help", verb)
}

func (c *console[P]) isPanel(p visibility.Panel) bool {
	for _, known := range c.panels.Panels() {
		if known == p {
			return true
		}
	}
	return false
}

func (c *console[P]) panelArg(args []string) (visibility.Panel, error) {
	if len(args) != 1 || !c.isPanel(visibility.Panel(args[0])) {
		return "", fmt.Errorf("expected one panel of %v", c.panels.Panels())
	}
	return visibility.Panel(args[0]), nil
}

func (c *console[P]) loadPlans(ctx context.Context) error {
	if err := c.ws.Refresh(ctx); err != nil {
		return err
	}
	c.renderPlans()
	return nil
}

func (c *console[P]) showTrainees(ctx context.Context) error {
	c.p.section("Trainees")
	c.p.empty("The trainee roster is managed by the trainee service")
	return nil
}

// renderPlans prints the cached list when the plans panel is visible.
func (c *console[P]) renderPlans() {
	if !c.panels.Visible(visibility.PanelPlans) {
		return
	}
	c.p.section("Plans")
	plans := c.ws.Cache.Plans()
	if len(plans) == 0 {
		c.p.empty(fmt.Sprintf("No %s plans yet", c.kit.catalog))
		return
	}
	rows := make([][]string, len(plans))
	for i, plan := range plans {
		rows[i] = c.kit.row(plan)
	}
	c.p.table(c.kit.headers, rows)
}

func (c *console[P]) renderDraft() {
	state := c.ws.Form.State()
	if !state.Open {
		c.p.empty("No draft open; use \"new\" or \"edit <id>\"")
		return
	}
	switch m := state.Mode.(type) {
	case planform.Create:
		c.p.section("New plan")
	case planform.Edit:
		c.p.section("Editing plan " + m.ID.Hex())
	}
	for _, name := range c.ws.Form.Names() {
		c.p.labelValue(name, state.Fields[name])
	}
	if state.Pending > 0 {
		c.p.empty(countOf(state.Pending, "save in flight", "saves in flight"))
	}
	if state.Err != nil {
		c.p.error(state.Err)
	}
}

func (c *console[P]) help() {
	c.p.info(`Commands:
  show|hide|toggle <panel>   change panel visibility (%s)
  list                       print the cached plans
  refresh                    refetch the plans from the service
  new                        open a draft for a new plan
  edit <plan-id>             open a draft copied from a plan
  set <field> <value>        change a draft field (%s)
  draft                      print the open draft
  submit                     validate and save the draft
  cancel                     discard the draft
  toggle <plan-id>           flip a plan between active and inactive
  quit                       leave the console`, joinPanels(c.panels.Panels()), strings.Join(c.ws.Form.Names(), ", "))
}

func joinPanels(panels []visibility.Panel) string {
	names := make([]string, len(panels))
	for i, p := range panels {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
