package cli

import (
	"alcyxob/plan-admin/internal/config"
	"alcyxob/plan-admin/internal/session"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTokenCmd issues development tokens signed with the configured secret.
// Production tokens come from the session provider.
func newTokenCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Development session tokens",
		Args:  cobra.NoArgs,
	}

	var owner string
	var ttl time.Duration
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a bearer token for an owner id with jwt.secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := primitive.ObjectIDFromHex(owner); err != nil {
				return errors.New("--owner must be a 24 character hex id")
			}
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWT.Expiration
			}
			token, err := session.Issue(cfg.JWT.Secret, owner, ttl)
			if err != nil {
				return err
			}
			p := printer{cmd.OutOrStdout()}
			if opts.jsonOutput {
				return p.json(map[string]string{"owner": owner, "token": token})
			}
			p.info("%s", token)
			return nil
		},
	}
	issueCmd.Flags().StringVar(&owner, "owner", "", "Owner id the token is issued for")
	issueCmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to jwt.expiration)")
	_ = issueCmd.MarkFlagRequired("owner")

	cmd.AddCommand(issueCmd)
	return cmd
}
