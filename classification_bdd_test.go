package blockstatus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// ClassificationBDDTestContext holds the state of one scenario.
type ClassificationBDDTestContext struct {
	dir        string
	configPath string
	registry   *StaticRegistry
	resolver   *Resolver
	report     *Report
}

func (c *ClassificationBDDTestContext) reset(dir string) {
	c.dir = dir
	c.configPath = filepath.Join(dir, "blockstatus.yaml")
	c.registry = nil
	c.resolver = nil
	c.report = nil
}

func (c *ClassificationBDDTestContext) theHostKnowsThePlaceableBlocks(list string) error {
	c.registry = NewStaticRegistry()
	for _, raw := range strings.Split(list, ",") {
		id, err := ParseBlockID(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		c.registry.Register(id, true)
	}
	return nil
}

func (c *ClassificationBDDTestContext) theConfiguration(doc *godog.DocString) error {
	return os.WriteFile(c.configPath, []byte(doc.Content), 0o600)
}

func (c *ClassificationBDDTestContext) thereIsNoConfigurationFile() error {
	if err := os.Remove(c.configPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *ClassificationBDDTestContext) theResolverLoadsTheConfiguration() error {
	if c.resolver == nil {
		loader, err := NewFileLoader(c.configPath)
		if err != nil {
			return err
		}
		c.resolver = NewResolver(WithConfigLoader(loader), WithHostRegistry(c.registry))
	}
	report, err := c.resolver.Reload(context.Background())
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	c.report = report
	return nil
}

func (c *ClassificationBDDTestContext) isClassifiedAs(raw, want string) error {
	if got := c.resolver.ClassifyString(raw).String(); got != want {
		return fmt.Errorf("%s classified as %s, want %s", raw, got, want)
	}
	return nil
}

func (c *ClassificationBDDTestContext) theLabelForIs(raw, want string) error {
	got := c.resolver.LabelFor(c.resolver.ClassifyString(raw))
	if got != want {
		return fmt.Errorf("label for %s is %q, want %q", raw, got, want)
	}
	return nil
}

func (c *ClassificationBDDTestContext) thereAreDiagnostics(n int) error {
	if c.report.Len() != n {
		return fmt.Errorf("expected %d diagnostics, got %d: %v", n, c.report.Len(), c.report.Err())
	}
	return nil
}

func (c *ClassificationBDDTestContext) diagnosticIs(n int, kind string) error {
	targets := map[string]error{
		"parse error":           ErrParse,
		"conflict":              ErrConflictingIdentifier,
		"missing configuration": ErrConfigMissing,
	}
	target, ok := targets[kind]
	if !ok {
		return fmt.Errorf("unknown diagnostic kind %q", kind)
	}
	if got := c.report.Count(target); got != n {
		return fmt.Errorf("expected %d %s diagnostics, got %d: %v", n, kind, got, c.report.Err())
	}
	return nil
}

func TestClassificationBDD(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			testCtx := &ClassificationBDDTestContext{}

			ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
				dir, err := os.MkdirTemp("", "blockstatus-bdd-*")
				if err != nil {
					return ctx, err
				}
				testCtx.reset(dir)
				return ctx, nil
			})
			ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
				return ctx, os.RemoveAll(testCtx.dir)
			})

			ctx.Step(`^the host knows the placeable blocks "([^"]*)"$`, testCtx.theHostKnowsThePlaceableBlocks)
			ctx.Step(`^the configuration:$`, testCtx.theConfiguration)
			ctx.Step(`^the configuration changes to:$`, testCtx.theConfiguration)
			ctx.Step(`^there is no configuration file$`, testCtx.thereIsNoConfigurationFile)
			ctx.Step(`^the resolver loads the configuration$`, testCtx.theResolverLoadsTheConfiguration)
			ctx.Step(`^"([^"]*)" is classified as "([^"]*)"$`, testCtx.isClassifiedAs)
			ctx.Step(`^the label for "([^"]*)" is "([^"]*)"$`, testCtx.theLabelForIs)
			ctx.Step(`^there are (\d+) diagnostics$`, testCtx.thereAreDiagnostics)
			ctx.Step(`^(\d+) diagnostic is a (parse error|conflict|missing configuration)$`, testCtx.diagnosticIs)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/classification.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
