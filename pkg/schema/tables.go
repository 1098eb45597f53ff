package schema

import "slices"

// Table names as they appear under the output prefix.
const (
	TableSongs     = "songs"
	TableArtists   = "artists"
	TableUsers     = "users"
	TableTime      = "time"
	TableSongplays = "songplays"
)

// Table describes one derived table and its partitioning policy.
type Table struct {
	// Name is the sub-path of the table under the output prefix.
	Name string

	// PartitionBy lists the hive partition columns, outer first.
	// Empty means the table is written as a single unpartitioned set
	// of files (small tables that are always fully scanned).
	PartitionBy []string
}

// Tables is the partition policy of the star schema.
//
// songs is partitioned for catalog queries by era or artist; time and
// songplays share (year, month) so calendar-range scans prune both
// sides of their join; artists and users are small and unpartitioned.
var Tables = []Table{
	{Name: TableSongs, PartitionBy: []string{"year", "artist_id"}},
	{Name: TableArtists},
	{Name: TableUsers},
	{Name: TableTime, PartitionBy: []string{"year", "month"}},
	{Name: TableSongplays, PartitionBy: []string{"year", "month"}},
}

// TableNames returns the names of all derived tables in publish order.
func TableNames() []string {
	res := make([]string, len(Tables))
	for i, t := range Tables {
		res[i] = t.Name
	}
	return res
}

// IsTable reports whether name is a known derived table.
func IsTable(name string) bool {
	return slices.Contains(TableNames(), name)
}

// TableByName returns the policy entry for name.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
