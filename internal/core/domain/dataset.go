package domain

import "sort"

// Dataset is the durable collection of canonical records, keyed uniquely by
// post id. Merging is an idempotent upsert per key, and the serialized order
// is deterministic (creation date descending, then post id), so the final
// dataset does not depend on the order records were merged in.
type Dataset struct {
	records map[string]CanonicalRecord
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{records: make(map[string]CanonicalRecord)}
}

// DatasetFrom builds a dataset from existing records. Later duplicates of a
// post id overwrite earlier ones.
func DatasetFrom(records []CanonicalRecord) *Dataset {
	d := NewDataset()
	for _, r := range records {
		d.Upsert(r)
	}
	return d
}

// Upsert inserts or overwrites the record for its post id.
func (d *Dataset) Upsert(r CanonicalRecord) {
	d.records[r.PostID] = r
}

// Get returns the record for a post id, if present.
func (d *Dataset) Get(postID string) (CanonicalRecord, bool) {
	r, ok := d.records[postID]
	return r, ok
}

// Contains reports whether a record exists for the post id.
func (d *Dataset) Contains(postID string) bool {
	_, ok := d.records[postID]
	return ok
}

// Remove deletes the record for a post id. Returns true if one was removed.
func (d *Dataset) Remove(postID string) bool {
	if _, ok := d.records[postID]; !ok {
		return false
	}
	delete(d.records, postID)
	return true
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns all records in canonical order: creation date descending,
// ties broken by post id ascending.
func (d *Dataset) Records() []CanonicalRecord {
	out := make([]CanonicalRecord, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].PostID < out[j].PostID
	})
	return out
}
