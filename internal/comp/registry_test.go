package comp

import (
	"testing"

	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Insert(t *testing.T) {
	path := pathkey.New("main", "S")
	rec := &Record{TargetID: "c", TargetKind: KindID, ModelID: "main", Origin: pathkey.New("main")}
	other := &Record{TargetID: "d", TargetKind: KindID, ModelID: "main", Origin: pathkey.New("main")}

	testCases := []struct {
		name    string
		inserts []*Record
		want    *Record
		changed []bool
	}{
		{
			name:    "first writer wins",
			inserts: []*Record{rec, other},
			want:    rec,
			changed: []bool{true, false},
		},
		{
			name:    "replacement upgrades a deletion",
			inserts: []*Record{nil, rec},
			want:    rec,
			changed: []bool{true, true},
		},
		{
			name:    "deletion never downgrades a replacement",
			inserts: []*Record{rec, nil},
			want:    rec,
			changed: []bool{true, false},
		},
		{
			name:    "second deletion is a no-op",
			inserts: []*Record{nil, nil},
			want:    nil,
			changed: []bool{true, false},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			for i, in := range tc.inserts {
				assert.Equal(t, tc.changed[i], r.Insert(path, KindID, "x", in), "insert %d", i)
			}
			got, found := r.Lookup(path, KindID, "x")
			require.True(t, found)
			assert.Same(t, tc.want, got)
			assert.Equal(t, 1, r.Len())
		})
	}
}

func TestRegistry_LookupIsKeyedByPathKindAndID(t *testing.T) {
	r := NewRegistry()
	s := pathkey.New("main", "S")
	r.Insert(s, KindID, "x", nil)

	_, found := r.Lookup(s, KindID, "x")
	assert.True(t, found)

	_, found = r.Lookup(s, KindMetaID, "x")
	assert.False(t, found, "kind is part of the key")

	_, found = r.Lookup(pathkey.New("main", "T"), KindID, "x")
	assert.False(t, found, "path is part of the key")

	_, found = r.Lookup(s.Push("x"), KindID, "x")
	assert.False(t, found)
}

func TestRegistry_EntriesKeepInsertionOrder(t *testing.T) {
	r := NewRegistry()
	s := pathkey.New("main", "S")
	rec := &Record{TargetID: "k"}
	r.Insert(s, KindID, "b", nil)
	r.Insert(s, KindPort, "a", rec)
	r.Insert(s, KindID, "c", nil)
	r.Insert(s, KindID, "b", rec)
	r.Insert(pathkey.New("main"), KindID, "z", nil)

	entries := r.Entries(s)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Kind: KindID, ID: "b", Record: rec}, entries[0])
	assert.Equal(t, Entry{Kind: KindPort, ID: "a", Record: rec}, entries[1])
	assert.Equal(t, Entry{Kind: KindID, ID: "c"}, entries[2])

	entries[0].ID = "mutated"
	assert.Equal(t, "b", r.Entries(s)[0].ID, "Entries returns a copy")
	assert.Nil(t, r.Entries(pathkey.New("main", "T")))
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []pathkey.Key{s, pathkey.New("main")}, r.Paths())
}
