package cli

import (
	"alcyxob/plan-admin/internal/domain"
	"strconv"

	"github.com/spf13/cobra"
)

func newBookingsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List bookings made against the turf plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend(opts)
			if err != nil {
				return err
			}
			bookings, err := b.client.ListBookings(cmd.Context(), b.session)
			if err != nil {
				return err
			}
			return printBookings(printer{cmd.OutOrStdout()}, opts.jsonOutput, bookings)
		},
	}
}

func printBookings(p printer, asJSON bool, bookings []domain.Booking) error {
	if asJSON {
		if bookings == nil {
			bookings = []domain.Booking{}
		}
		return p.json(bookings)
	}
	if len(bookings) == 0 {
		p.empty("No bookings yet")
		return nil
	}
	rows := make([][]string, len(bookings))
	for i, bk := range bookings {
		date := ""
		if !bk.Date.IsZero() {
			date = bk.Date.Format("2006-01-02")
		}
		rows[i] = []string{date, string(bk.From) + "-" + string(bk.To), bk.CustomerName, bk.Phone, strconv.FormatFloat(bk.Amount, 'f', 2, 64), bk.Status}
	}
	p.table([]string{"DATE", "SLOT", "NAME", "PHONE", "AMOUNT", "STATUS"}, rows)
	return nil
}
