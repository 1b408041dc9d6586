package view

import (
	"strconv"
	"strings"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
)

// Row is one line item in the editor popup. Name and Amount hold the
// raw text being edited; Amount is parsed only when a save is issued.
// A draft row has no server ID yet. The list below guarantees there is
// always exactly one draft row and that it sits at the end.
type Row struct {
	Key    uint64 // local identity, stable across edits and reorders
	ID     int64  // server id, zero while draft
	Draft  bool
	Name   string
	Amount string

	issuedSeq uint64 // newest save token issued for this row
}

// AmountValue parses the raw amount text. Empty text counts as zero,
// matching what a blank form field submits.
func (r Row) AmountValue() (float64, error) {
	s := strings.TrimSpace(r.Amount)
	if s == "" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

// SaveToken identifies one issued save. Responses carry it back so the
// list can tell whether a newer save for the same row has superseded
// them in the meantime.
type SaveToken struct {
	Key uint64
	Seq uint64
}

// RowList holds the rows of one open category popup.
type RowList struct {
	rows    []Row
	nextKey uint64
	nextSeq uint64
}

// NewRowList builds the list from fetched items and appends the draft
// row used to enter the next item.
func NewRowList(items []apiclient.Item) *RowList {
	l := &RowList{}

	for _, item := range items {
		l.rows = append(l.rows, Row{
			Key:    l.takeKey(),
			ID:     item.ID,
			Name:   item.Name,
			Amount: strconv.FormatFloat(item.Amount, 'f', -1, 64),
		})
	}

	l.appendDraft()

	return l
}

func (l *RowList) takeKey() uint64 {
	l.nextKey++
	return l.nextKey
}

func (l *RowList) appendDraft() {
	l.rows = append(l.rows, Row{Key: l.takeKey(), Draft: true})
}

func (l *RowList) Len() int { return len(l.rows) }

func (l *RowList) At(i int) Row { return l.rows[i] }

func (l *RowList) Rows() []Row { return l.rows }

func (l *RowList) SetName(i int, s string) {
	if i >= 0 && i < len(l.rows) {
		l.rows[i].Name = s
	}
}

func (l *RowList) SetAmount(i int, s string) {
	if i >= 0 && i < len(l.rows) {
		l.rows[i].Amount = s
	}
}

// BeginSave snapshots row i and issues a fresh save token for it. The
// snapshot carries the values current at call time; later edits do not
// leak into an in-flight save.
func (l *RowList) BeginSave(i int) (SaveToken, Row, bool) {
	if i < 0 || i >= len(l.rows) {
		return SaveToken{}, Row{}, false
	}

	l.nextSeq++
	l.rows[i].issuedSeq = l.nextSeq

	return SaveToken{Key: l.rows[i].Key, Seq: l.nextSeq}, l.rows[i], true
}

// ApplyCreate confirms the draft row that issued tok with its
// server-assigned id and appends a new draft. A token superseded by a
// newer save of the same row, or referring to a row that no longer
// exists, is a no-op.
func (l *RowList) ApplyCreate(tok SaveToken, id int64) bool {
	i := l.indexOf(tok.Key)
	if i < 0 {
		return false
	}

	if !l.rows[i].Draft || l.rows[i].issuedSeq != tok.Seq {
		return false
	}

	l.rows[i].Draft = false
	l.rows[i].ID = id
	l.appendDraft()

	return true
}

// Remove deletes the row with the given key, preserving the order of
// the rest. The draft row is never removed.
func (l *RowList) Remove(key uint64) bool {
	i := l.indexOf(key)
	if i < 0 || l.rows[i].Draft {
		return false
	}

	l.rows = append(l.rows[:i], l.rows[i+1:]...)

	return true
}

func (l *RowList) indexOf(key uint64) int {
	for i := range l.rows {
		if l.rows[i].Key == key {
			return i
		}
	}

	return -1
}
