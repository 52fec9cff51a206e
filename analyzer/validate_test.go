package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitlab/knitscope/knit"
)

func TestValidate_CircularConfirmed(t *testing.T) {
	run := runFor(mutualPair())
	issue := candidate(knit.CircularDependency, "com.shop.OrderService", "com.shop.InventoryService")

	validated := validateIssues(run, []knit.Issue{issue}, DefaultConfig())
	require.Len(t, validated, 1)
	assert.InDelta(t, 1.0, validated[0].Confidence, 1e-9)
	assert.EqualValues(t, knit.ValidatedTruePositive, validated[0].Status)
}

func TestValidate_CircularWithMissingEdges(t *testing.T) {
	// only one of the two claimed edges exists, confidence halves
	run := runFor([]knit.Component{
		withDependency(testComponent("com.shop", "OrderService"), depOn("com.shop.InventoryService")),
		testComponent("com.shop", "InventoryService"),
	})
	issue := candidate(knit.CircularDependency, "com.shop.OrderService", "com.shop.InventoryService")

	validated := validateIssues(run, []knit.Issue{issue}, DefaultConfig())
	require.Len(t, validated, 1)
	assert.InDelta(t, 0.5, validated[0].Confidence, 1e-9)
	assert.EqualValues(t, knit.NotValidated, validated[0].Status)
}

func TestValidate_AmbiguousScalesWithProviderCount(t *testing.T) {
	run := runFor([]knit.Component{
		withProvider(testComponent("com.app", "SqlModule"), providesAs("provideSql", "com.app.SqlUserRepository", "com.app.UserRepository")),
		withProvider(testComponent("com.app", "MongoModule"), providesAs("provideMongo", "com.app.MongoUserRepository", "com.app.UserRepository")),
	})
	issue := candidate(knit.AmbiguousProvider, "com.app.SqlModule", "com.app.MongoModule")

	validated := validateIssues(run, []knit.Issue{issue}, DefaultConfig())
	require.Len(t, validated, 1)
	assert.InDelta(t, 0.75, validated[0].Confidence, 1e-9)
	assert.EqualValues(t, knit.ValidatedTruePositive, validated[0].Status)
}

func TestValidate_ForgedAmbiguousBecomesFalsePositive(t *testing.T) {
	run := runFor([]knit.Component{
		withProvider(testComponent("com.app", "SqlModule"), providesAs("provideSql", "com.app.SqlUserRepository", "com.app.UserRepository")),
	})
	issue := candidate(knit.AmbiguousProvider, "com.app.SqlModule")

	validated := validateIssues(run, []knit.Issue{issue}, DefaultConfig())
	require.Len(t, validated, 1)
	assert.InDelta(t, 0.1, validated[0].Confidence, 1e-9)
	assert.EqualValues(t, knit.ValidatedFalsePositive, validated[0].Status)
}

func TestValidate_Unresolved(t *testing.T) {
	tests := []struct {
		name               string
		components         []knit.Component
		claimed            string
		expectedConfidence float64
		expectedStatus     knit.ValidationStatus
	}{
		{
			name: "nothing provides the type",
			components: []knit.Component{
				withDependency(testComponent("com.pay", "PaymentService"), depOn("com.pay.PaymentGateway")),
			},
			claimed:            "com.pay.PaymentService",
			expectedConfidence: 0.95,
			expectedStatus:     knit.ValidatedTruePositive,
		},
		{
			name: "type exists under other qualifiers",
			components: []knit.Component{
				withDependency(testComponent("com.pay", "PaymentService"), depOn("com.pay.PaymentGateway")),
				withProvider(testComponent("com.pay", "GatewayModule"), namedProvider("provideSandbox", "com.pay.PaymentGateway", "sandbox")),
			},
			claimed:            "com.pay.PaymentService",
			expectedConfidence: 0.85,
			expectedStatus:     knit.ValidatedTruePositive,
		},
		{
			name: "everything resolves, finding is stale",
			components: []knit.Component{
				withDependency(testComponent("com.shop", "OrderService"), depOn("com.shop.InventoryService")),
				testComponent("com.shop", "InventoryService"),
			},
			claimed:            "com.shop.OrderService",
			expectedConfidence: 0.1,
			expectedStatus:     knit.ValidatedFalsePositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := runFor(tt.components)
			issue := candidate(knit.UnresolvedDependency, tt.claimed)

			validated := validateIssues(run, []knit.Issue{issue}, DefaultConfig())
			require.Len(t, validated, 1)
			assert.InDelta(t, tt.expectedConfidence, validated[0].Confidence, 1e-9)
			assert.EqualValues(t, tt.expectedStatus, validated[0].Status)
		})
	}
}

func TestValidate_FailureIsIsolatedPerIssue(t *testing.T) {
	run := runFor(mutualPair())
	issues := []knit.Issue{
		candidate(knit.UnresolvedDependency, "com.ghost.Missing"), // unknown component
		candidate(knit.CircularDependency, "com.shop.OrderService", "com.shop.InventoryService"),
	}

	validated := validateIssues(run, issues, DefaultConfig())
	require.Len(t, validated, 2)
	assert.EqualValues(t, knit.ValidationFailed, validated[0].Status)
	assert.EqualValues(t, knit.ValidatedTruePositive, validated[1].Status)

	require.NotEmpty(t, run.diags)
	assert.Equal(t, "validate", run.diags[len(run.diags)-1].Stage)
}

func TestValidate_UnknownTypeFails(t *testing.T) {
	run := runFor(nil)
	issues := []knit.Issue{{Type: "EXOTIC_DEFECT", Components: []string{"com.app.A"}, Status: knit.NotValidated}}

	validated := validateIssues(run, issues, DefaultConfig())
	require.Len(t, validated, 1)
	assert.EqualValues(t, knit.ValidationFailed, validated[0].Status)
}

func TestValidate_ThresholdsComeFromConfig(t *testing.T) {
	run := runFor([]knit.Component{
		withProvider(testComponent("com.app", "SqlModule"), providesAs("provideSql", "com.app.SqlUserRepository", "com.app.UserRepository")),
		withProvider(testComponent("com.app", "MongoModule"), providesAs("provideMongo", "com.app.MongoUserRepository", "com.app.UserRepository")),
	})
	issue := candidate(knit.AmbiguousProvider, "com.app.SqlModule", "com.app.MongoModule")

	strict := DefaultConfig()
	strict.TruePositiveThreshold = 0.9

	validated := validateIssues(run, []knit.Issue{issue}, strict)
	require.Len(t, validated, 1)
	assert.EqualValues(t, knit.NotValidated, validated[0].Status) // 0.75 sits between the thresholds
}

func TestValidate_SingletonAndQualifierChecks(t *testing.T) {
	run := runFor([]knit.Component{
		withProvider(testComponent("com.auth", "AuthModule"), knit.Provider{Method: "provideAuth", ReturnType: "com.auth.AuthService", Named: true, Qualifier: "primary", Singleton: true}),
		withProvider(testComponent("com.auth", "LegacyAuthModule"), knit.Provider{Method: "provideLegacyAuth", ReturnType: "com.auth.AuthService", Named: true, Qualifier: "legacy", Singleton: true}),
		withDependency(testComponent("com.auth", "LoginFlow"), namedDep("com.auth.AuthService", "staging")),
	})

	issues := []knit.Issue{
		candidate(knit.SingletonViolation, "com.auth.AuthModule", "com.auth.LegacyAuthModule"),
		candidate(knit.NamedQualifierMismatch, "com.auth.LoginFlow"),
	}
	validated := validateIssues(run, issues, DefaultConfig())
	require.Len(t, validated, 2)

	assert.InDelta(t, 0.8, validated[0].Confidence, 1e-9)
	assert.EqualValues(t, knit.ValidatedTruePositive, validated[0].Status)
	assert.InDelta(t, 0.8, validated[1].Confidence, 1e-9)
	assert.EqualValues(t, knit.ValidatedTruePositive, validated[1].Status)
}
