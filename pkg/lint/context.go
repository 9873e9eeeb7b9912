package lint

import (
	"context"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/embedded"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per rule invocation.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed document.
	File *markup.Document

	// Root is the tree root (convenience alias for File.Root). Nil for
	// script and Markdown hosts.
	Root *markup.Node

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	// Embedded memoizes embedded fragments of File. It is shared by every
	// rule run against the same file and dropped with the file result.
	Embedded *embedded.Cache
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *markup.Document,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *markup.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Embedded:   embedded.NewCache(),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Options returns the raw rule options, or nil.
func (rc *RuleContext) Options() map[string]any {
	if rc.RuleConfig == nil {
		return nil
	}
	return rc.RuleConfig.Options
}
