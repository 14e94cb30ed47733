package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/client/services"
)

// Tables handles "tables <date> <time> <party>" and waits for the lookup.
// Repeating the current query fetches it again.
func (a *App) Tables(ctx context.Context, args []string) error {
	if len(args) != 3 {
		printlnFn("Usage: tables <YYYY-MM-DD> <HH:MM> <party size>")
		return errUsage
	}
	party, err := strconv.Atoi(args[2])
	if err != nil {
		printlnFn("Party size must be a number")
		return errUsage
	}

	q := models.AvailabilityQuery{Date: strings.TrimSpace(args[0]), Time: strings.TrimSpace(args[1]), PartySize: party}
	if prev := a.tables.Snapshot(); prev.Query == q && prev.Status != services.NotQueryable {
		// The same key is a no-op for SetQuery; asking again means fetch again.
		a.tables.Reload(ctx)
	} else {
		a.tables.SetQuery(ctx, q)
	}
	a.tables.Wait()
	a.printTables(a.tables.Snapshot())
	return nil
}

func (a *App) printTables(s services.AvailabilitySnapshot) {
	switch s.Status {
	case services.NotQueryable:
		printlnFn("Date, time and a party of at least 1 are required.")
	case services.Fetching:
		printlnFn("Still looking for tables...")
	case services.Errored:
		printlnFn("Could not load tables:", s.Message)
	case services.Resolved:
		if len(s.Tables) == 0 {
			printlnFn(fmt.Sprintf("No tables free on %s at %s for %d.", s.Query.Date, s.Query.Time, s.Query.PartySize))
			return
		}
		selected, hasSelection := a.selection.Selected()
		for _, t := range s.Tables {
			mark := " "
			if hasSelection && t.TableNumber == selected {
				mark = "*"
			}
			printlnFn(fmt.Sprintf("%s table %-3d seats %-2d %s", mark, t.TableNumber, t.Capacity, t.Zone))
		}
	}
}

// onTables is the resolver's observer. A selected table that is no longer
// offered is dropped.
func (a *App) onTables(candidates []models.TableCandidate) {
	if a.selection.Revalidate(candidates) {
		printlnFn("The selected table is no longer available; selection cleared.")
	}
}

// SelectTable handles "select <table number>".
func (a *App) SelectTable(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: select <table number>")
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Table number must be a number")
		return errUsage
	}

	s := a.tables.Snapshot()
	if s.Status != services.Resolved {
		printlnFn("Look up tables first: tables <date> <time> <party>")
		return services.ErrIncompleteQuery
	}
	if err := a.selection.Select(n, s.Tables); err != nil {
		printlnFn(fmt.Sprintf("Table %d is not free for this query.", n))
		return err
	}
	printlnFn(fmt.Sprintf("Selected table %d.", n))
	return nil
}

// Reserve books the selected table for the current query. Contact details
// default to the signed-in user.
func (a *App) Reserve(ctx context.Context) error {
	s := a.tables.Snapshot()
	table, ok := a.selection.Selected()
	if s.Status != services.Resolved || !ok {
		printlnFn("Select a table first: tables <date> <time> <party>, then select <table>")
		return services.ErrIncompleteQuery
	}

	var defName, defPhone string
	if cur := a.session.Current(); cur.User != nil {
		defName, defPhone = cur.User.DisplayName(), cur.User.Phone
	}

	name, err := GetTextOrDefault(a.reader, "Name for the booking", defName, a.out)
	if err != nil {
		return err
	}
	phone, err := GetTextOrDefault(a.reader, "Phone", defPhone, a.out)
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return err
	}

	res, err := a.booking.Book(ctx, services.ReservationDraft{
		Date:          s.Query.Date,
		Time:          s.Query.Time,
		PartySize:     strconv.Itoa(s.Query.PartySize),
		TableNumber:   strconv.Itoa(table),
		CustomerName:  name,
		CustomerPhone: phone,
		Notes:         notes,
	})
	if err != nil {
		return err
	}

	a.selection.Clear()
	printlnFn(fmt.Sprintf("Reservation #%d: table %d, %s", res.ID, res.TableNumber, res.Status))
	return nil
}
