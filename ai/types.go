package ai

// EntityTypeList is the ordered set of entity labels the pipeline keeps.
// It is embedded in recognizer prompts; recognizer output with any other
// label is dropped.
var EntityTypeList = []string{
	"person",
	"org",
	"gpe",
	"fac",
	"norp",
	"event",
	"date",
}

// EntityTypes provides membership lookup over EntityTypeList.
var EntityTypes = func() map[string]bool {
	m := make(map[string]bool, len(EntityTypeList))
	for _, t := range EntityTypeList {
		m[t] = true
	}
	return m
}()

// SupportedEntityType reports whether the label survives filtering.
// Callers normalize labels to lowercase before checking.
func SupportedEntityType(label string) bool {
	return EntityTypes[label]
}
