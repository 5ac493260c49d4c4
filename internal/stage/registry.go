package stage

// order is the fixed stage sequence the pipeline runs in; ListAvailableStages
// reports the subset of this list whose Requires() are all satisfied.
var order = []string{
	"project-setup",
	"problem-framing",
	"research-questions",
	"search-concept-expansion",
	"database-query-plan",
	"query-execution",
	"screening-criteria",
	"strategy-export",
}

// registry maps stage name to implementation, populated at init, the same
// registering-value-types-into-a-map idiom the dialect registry uses rather
// than a class hierarchy.
var registry = map[string]Stage{}

func register(s Stage) {
	registry[s.Name()] = s
}

func init() {
	register(&ProjectSetup{})
	register(&ProblemFraming{})
	register(&ResearchQuestions{})
	register(&SearchConceptExpansion{})
	register(&DatabaseQueryPlan{})
	register(&QueryExecution{})
	register(&ScreeningCriteria{})
	register(&StrategyExport{})
}

// Get returns the named stage, or nil if unknown.
func Get(name string) Stage {
	return registry[name]
}

// Names returns every registered stage name in pipeline order.
func Names() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}
