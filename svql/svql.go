// Package svql is the top-level entry point: it resolves two design.Design
// values into graphindex.GraphIndex views and runs a subgraph.Searcher over
// them, the way ResolveModule is the single entry point that turns source
// files into a compiled Module.
package svql

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nickrallison/svql-sub002/design"
	"github.com/nickrallison/svql-sub002/graphindex"
	"github.com/nickrallison/svql-sub002/subgraph"
)

// FindSubgraphs builds graph indices for needle and haystack and enumerates
// every embedding of needle into haystack under cfg. A nil cfg uses
// subgraph.DefaultConfig(). It returns a wrapped *graphindex.ConstructionError
// if either design is malformed. Diagnostics go to logrus.StandardLogger();
// use a SubgraphMatcher for a caller-supplied logger.
func FindSubgraphs(needle, haystack design.Design, cfg *subgraph.Config) (*subgraph.AssignmentSet, error) {
	return findSubgraphs(needle, haystack, cfg, logrus.StandardLogger())
}

func findSubgraphs(needle, haystack design.Design, cfg *subgraph.Config, log logrus.FieldLogger) (*subgraph.AssignmentSet, error) {
	if cfg == nil {
		cfg = subgraph.DefaultConfig()
	}

	needleIdx, err := graphindex.New(needle, log.WithField("side", "needle"))
	if err != nil {
		return nil, errors.Wrap(err, "svql: indexing needle")
	}
	haystackIdx, err := graphindex.New(haystack, log.WithField("side", "haystack"))
	if err != nil {
		return nil, errors.Wrap(err, "svql: indexing haystack")
	}

	searcher := subgraph.NewSearcher(needleIdx, haystackIdx, cfg, log)
	return searcher.Run(), nil
}

// SubgraphMatcher is the builder-form entry point, for callers that want to
// fix a configuration once and run it against several needle/haystack
// pairs, or that prefer a constructed value over a free function.
type SubgraphMatcher struct {
	cfg *subgraph.Config
	log logrus.FieldLogger
}

// NewSubgraphMatcher returns a SubgraphMatcher configured with cfg. A nil
// cfg uses subgraph.DefaultConfig().
func NewSubgraphMatcher(cfg *subgraph.Config) *SubgraphMatcher {
	if cfg == nil {
		cfg = subgraph.DefaultConfig()
	}
	return &SubgraphMatcher{cfg: cfg, log: logrus.StandardLogger()}
}

// WithLogger overrides the matcher's logger.
func (m *SubgraphMatcher) WithLogger(log logrus.FieldLogger) *SubgraphMatcher {
	m.log = log
	return m
}

// EnumerateAll finds every embedding of needle into haystack. needleTopName
// and haystackTopName are carried only for diagnostics.
func (m *SubgraphMatcher) EnumerateAll(needle, haystack design.Design, needleTopName, haystackTopName string) (*subgraph.AssignmentSet, error) {
	log := m.log.WithFields(logrus.Fields{"needle": needleTopName, "haystack": haystackTopName})
	return findSubgraphs(needle, haystack, m.cfg, log)
}
