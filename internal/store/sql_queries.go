// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-courier/models"
	sq "github.com/Masterminds/squirrel"
)

var transferColumns = []string{
	"id", "sender_address", "receiver_address", "sender_id", "receiver_id",
	"origin", "filename", "subject", "size", "wrapped_key", "status",
	"chunk_count", "chunk_size", "created_at", "updated_at",
}

var transferLogColumns = []string{"id", "transfer_id", "kind", "actor", "created_at"}

// OutstandingStatuses are the states of a transfer that has not been
// delivered yet.
var OutstandingStatuses = []models.TransferStatus{
	models.StatusCreated,
	models.StatusUploaded,
	models.StatusSent,
	models.StatusAccepted,
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func statusStrings(statuses []models.TransferStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func buildInsertTransferQuery(t models.Transfer) (string, []any, error) {
	return psql.Insert("transfers").
		Columns(
			"id", "sender_address", "receiver_address", "sender_id", "receiver_id",
			"origin", "filename", "subject", "size", "wrapped_key", "status", "chunk_size",
		).
		Values(
			t.ID, t.Sender, t.Receiver, t.SenderID, t.ReceiverID,
			string(t.Origin), t.Filename, t.Subject, t.Size, t.WrappedKey, string(t.Status), t.ChunkSize,
		).
		Suffix("RETURNING " + joinColumns(transferColumns)).
		ToSql()
}

func buildSelectTransferQuery(id string) (string, []any, error) {
	return psql.Select(transferColumns...).
		From("transfers").
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildStatusChangeQuery builds the compare-and-set update. wrapped_key is
// never part of the SET list.
func buildStatusChangeQuery(change StatusChange) (string, []any, error) {
	if len(change.From) == 0 {
		return "", nil, fmt.Errorf("status change of %s has no source states", change.ID)
	}

	q := psql.Update("transfers").
		Set("status", string(change.To)).
		Set("updated_at", sq.Expr("now()"))
	if change.ChunkCount != nil {
		q = q.Set("chunk_count", *change.ChunkCount)
	}

	return q.Where(sq.Eq{"id": change.ID, "status": statusStrings(change.From)}).ToSql()
}

func buildListByStatusQuery(statuses []models.TransferStatus, before time.Time, limit uint64) (string, []any, error) {
	q := psql.Select(transferColumns...).
		From("transfers").
		Where(sq.Eq{"status": statusStrings(statuses)}).
		Where(sq.Lt{"updated_at": before}).
		OrderBy("updated_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.ToSql()
}

func buildListForAddressQuery(address string, box models.Mailbox) (string, []any, error) {
	column := "receiver_address"
	if box == models.Outbox {
		column = "sender_address"
	}

	return psql.Select(transferColumns...).
		From("transfers").
		Where(sq.Eq{column: address}).
		Where(sq.NotEq{"status": string(models.StatusDeleted)}).
		OrderBy("created_at DESC").
		ToSql()
}

func buildListOutstandingForAddressQuery(address string) (string, []any, error) {
	return psql.Select(transferColumns...).
		From("transfers").
		Where(sq.Or{sq.Eq{"sender_address": address}, sq.Eq{"receiver_address": address}}).
		Where(sq.Eq{"status": statusStrings(OutstandingStatuses)}).
		ToSql()
}
