package store

import (
	"database/sql"
	"fmt"
	"strings"

	addressStore "github.com/MrJamesThe3rd/rounds/internal/address/store"
	"github.com/MrJamesThe3rd/rounds/internal/job"
)

const selectCompletedColumns = `
	h.idjob_history, h.job_id, h.timestamp, h.paid, h.payment_type_id,
	j.price, COALESCE(j.info, ''), j.customer_id, TRIM(CONCAT(c.forename, ' ', c.surname)),
	j.zone_id, COALESCE(z.name, ''),
	` + addressStore.Columns

const fromCompleted = `
	FROM job_history h
	JOIN jobs j ON j.idjob = h.job_id
	LEFT JOIN customer c ON c.idcustomer = j.customer_id
	LEFT JOIN zone z ON z.idzone = j.zone_id
	LEFT JOIN address a ON a.idaddress = j.address_id`

var completedOrder = map[job.Sort]string{
	job.SortDateDesc:     "h.timestamp DESC, h.idjob_history DESC",
	job.SortDateAsc:      "h.timestamp ASC, h.idjob_history ASC",
	job.SortCustomerAsc:  "LOWER(c.surname) ASC NULLS LAST, LOWER(c.forename) ASC NULLS LAST, h.timestamp DESC",
	job.SortCustomerDesc: "LOWER(c.surname) DESC NULLS LAST, LOWER(c.forename) DESC NULLS LAST, h.timestamp DESC",
	job.SortZoneAsc:      "LOWER(z.name) ASC NULLS LAST, h.timestamp DESC",
	job.SortZoneDesc:     "LOWER(z.name) DESC NULLS LAST, h.timestamp DESC",
	job.SortPaidFirst:    "h.paid DESC, h.timestamp DESC",
}

// buildCompletedQuery renders the filter as a parameterised query. Only
// placeholders carry user input.
func buildCompletedQuery(f job.CompletedFilter) (string, []any) {
	query := `SELECT ` + selectCompletedColumns + fromCompleted + `
		WHERE TRUE`

	var args []any

	argIdx := 1

	if f.CustomerID != nil {
		query += fmt.Sprintf(" AND j.customer_id = $%d", argIdx)

		args = append(args, *f.CustomerID)
		argIdx++
	}

	if f.ZoneID != nil {
		query += fmt.Sprintf(" AND j.zone_id = $%d", argIdx)

		args = append(args, *f.ZoneID)
		argIdx++
	}

	switch f.Paid {
	case job.PaidOnly:
		query += " AND h.paid = TRUE"
	case job.UnpaidOnly:
		query += " AND h.paid = FALSE"
	}

	if f.PaymentType != nil {
		query += fmt.Sprintf(" AND h.payment_type_id = $%d", argIdx)

		args = append(args, int(*f.PaymentType))
		argIdx++
	}

	if f.Search != "" {
		query += fmt.Sprintf(
			" AND (j.info ILIKE $%[1]d OR a.house_num_name ILIKE $%[1]d OR a.street_name ILIKE $%[1]d OR a.postcode ILIKE $%[1]d)",
			argIdx)

		args = append(args, "%"+escapeLike(f.Search)+"%")
		argIdx++
	}

	if f.From != nil {
		query += fmt.Sprintf(" AND h.timestamp >= $%d", argIdx)

		args = append(args, *f.From)
		argIdx++
	}

	if f.To != nil {
		query += fmt.Sprintf(" AND h.timestamp < $%d", argIdx)

		args = append(args, f.To.AddDate(0, 0, 1))
	}

	order, ok := completedOrder[f.Sort]
	if !ok {
		order = completedOrder[job.SortDateDesc]
	}

	query += " ORDER BY " + order

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// scanCompletion expects selectCompletedColumns order.
func scanCompletion(s scanner) (*job.Completion, error) {
	var (
		c                  job.Completion
		paymentType        sql.NullInt64
		customerID, zoneID sql.NullInt64
		addr               addressStore.Nullable
	)

	dest := append([]any{
		&c.ID, &c.JobID, &c.Timestamp, &c.Paid, &paymentType,
		&c.Price, &c.Info, &customerID, &c.CustomerName,
		&zoneID, &c.ZoneName,
	}, addr.Dest()...)

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	c.PaymentType = nullType(paymentType)
	c.CustomerID = nullInt64(customerID)
	c.ZoneID = nullInt64(zoneID)
	c.Address = addr.Address()

	return &c, nil
}
