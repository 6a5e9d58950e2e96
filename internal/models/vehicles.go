package models

// vehicles is the fixed allow-list of dispatchable units. Tokens extracted
// from log lines that resolve to anything else are dropped.
var vehicles = []string{
	"금암구급1", "금암구급2",
	"금암펌프1", "금암펌프2",
	"금암물탱크",
	"굴절", "사다리", "구조", "대응단",
}

var vehicleSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(vehicles))
	for _, v := range vehicles {
		s[v] = struct{}{}
	}
	return s
}()

// aliases maps variant spellings seen in the dispatch log to canonical names.
var aliases = map[string]string{
	"금암구급02":  "금암구급2",
	"금암구급2호": "금암구급2",
}

func Vehicles() []string {
	return append([]string(nil), vehicles...)
}

func KnownVehicle(name string) bool {
	_, ok := vehicleSet[name]
	return ok
}

func ResolveAlias(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}
