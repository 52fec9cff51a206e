package analyzer

import (
	"fmt"

	"github.com/knitlab/knitscope/knit"
)

// Wiring builders shared by the analyzer tests.

func testComponent(pkg, name string) knit.Component {
	return knit.Component{
		Package:    pkg,
		Name:       name,
		Type:       knit.TypeComponent,
		SourceFile: fmt.Sprintf("%s/%s.kt", pkg, name),
	}
}

func withDependency(component knit.Component, dep knit.Dependency) knit.Component {
	component.Dependencies = append(component.Dependencies, dep)
	return component
}

func withProvider(component knit.Component, provider knit.Provider) knit.Component {
	component.Providers = append(component.Providers, provider)
	return component
}

func withIssue(component knit.Component, issue knit.Issue) knit.Component {
	component.Issues = append(component.Issues, issue)
	return component
}

func depOn(typ string) knit.Dependency {
	return knit.Dependency{Property: knit.SimpleName(typ), TargetType: typ}
}

func namedDep(typ, qualifier string) knit.Dependency {
	dep := depOn(typ)
	dep.Named = true
	dep.Qualifier = qualifier
	return dep
}

func factoryDep(typ string) knit.Dependency {
	dep := depOn(typ)
	dep.Factory = true
	return dep
}

func singletonDep(typ string) knit.Dependency {
	dep := depOn(typ)
	dep.Singleton = true
	return dep
}

func provides(method, returnType string) knit.Provider {
	return knit.Provider{Method: method, ReturnType: returnType}
}

func providesAs(method, returnType, providesType string) knit.Provider {
	provider := provides(method, returnType)
	provider.ProvidesType = providesType
	return provider
}

func namedProvider(method, returnType, qualifier string) knit.Provider {
	provider := provides(method, returnType)
	provider.Named = true
	provider.Qualifier = qualifier
	return provider
}

func singletonProvider(method, returnType string) knit.Provider {
	provider := provides(method, returnType)
	provider.Singleton = true
	return provider
}

// mutualPair wires two components depending on each other, the smallest
// possible dependency cycle.
func mutualPair() []knit.Component {
	return []knit.Component{
		withDependency(testComponent("com.shop", "OrderService"), depOn("com.shop.InventoryService")),
		withDependency(testComponent("com.shop", "InventoryService"), depOn("com.shop.OrderService")),
	}
}

func issueTypes(issues []knit.Issue) []string {
	out := make([]string, 0, len(issues))
	for i := range issues {
		out = append(out, string(issues[i].Type))
	}
	return out
}

func issuesOfType(issues []knit.Issue, typ knit.IssueType) []knit.Issue {
	var out []knit.Issue
	for i := range issues {
		if issues[i].Type == typ {
			out = append(out, issues[i])
		}
	}
	return out
}
