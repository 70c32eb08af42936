package auth

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

type featureState struct {
	role     Role
	session  Session
	decision Decision
}

func (f *featureState) theRole(name string) error {
	f.role, _ = ParseRole(name)
	return nil
}

func (f *featureState) theRoleMay(action, resource, allowed string) error {
	res, ok := ParseResource(resource)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}

	act, ok := ParseAction(action)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	want := allowed == "true"
	if got := Can(f.role, res, act); got != want {
		return fmt.Errorf("can(%s, %s, %s) = %v, want %v", f.role, res, act, got, want) //nolint:err113
	}

	return nil
}

func (f *featureState) anUnauthenticatedVisitor() error {
	f.session = Anonymous()
	return nil
}

func (f *featureState) aUserSignedInAs(name string) error {
	role, ok := ParseRole(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRole, name)
	}

	f.session = NewSession(Principal{ID: "1", Username: name, Role: role})

	return nil
}

func (f *featureState) theyOpenAViewAllowedFor(list string) error {
	var roles []Role

	for _, name := range strings.Split(list, ",") {
		if r, ok := ParseRole(name); ok {
			roles = append(roles, r)
		}
	}

	f.decision = Guard(f.session, NewRoleSet(roles...))

	return nil
}

func (f *featureState) theGuardDecides(want string) error {
	if f.decision.String() != want {
		return fmt.Errorf("guard decided %s, want %s", f.decision, want) //nolint:err113
	}

	return nil
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name: "authorization",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			f := &featureState{}

			sc.Step(`^the role "([^"]*)"$`, f.theRole)
			sc.Step(`^the role may "([^"]*)" "([^"]*)" is "([^"]*)"$`, f.theRoleMay)
			sc.Step(`^an unauthenticated visitor$`, f.anUnauthenticatedVisitor)
			sc.Step(`^a user signed in as "([^"]*)"$`, f.aUserSignedInAs)
			sc.Step(`^they open a view allowed for "([^"]*)"$`, f.theyOpenAViewAllowedFor)
			sc.Step(`^the guard decides "([^"]*)"$`, f.theGuardDecides)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
