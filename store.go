package relgraph

// StorageUsage reports how much local storage the graph occupies.
type StorageUsage struct {
	Bytes      int64 `json:"bytes"`
	Nodes      int   `json:"nodes"`
	Edges      int   `json:"edges"`
	Activities int   `json:"activities"`
	Companies  int   `json:"companies"`
}
