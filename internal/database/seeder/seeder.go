// Package seeder populates a fresh dictionary with a starter set of
// canonical skills so profiles created against an empty deployment do not
// flood the review queue with obviously known names.
package seeder

import (
	"context"
	"errors"

	"bid-match/internal/domain/jdspec"
	"bid-match/internal/repository"

	"go.uber.org/zap"
)

// Run seeds the default canonical skills when the dictionary is empty. A
// dictionary that already has entries is left alone, so redeploys are safe.
func Run(ctx context.Context, dictionaries repository.DictionaryRepository, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	dict, revision, err := dictionaries.GetCurrent(ctx)
	if err != nil {
		return err
	}
	if dict.SkillCount() > 0 {
		return nil
	}

	added := 0
	for _, d := range defaults {
		if err := dict.AddCanonicalSkill(d.name, d.category); err != nil {
			return err
		}
		added++
	}

	if err := dictionaries.Save(ctx, dict, revision); err != nil {
		// Another instance seeded first; its defaults are as good as ours.
		if errors.Is(err, repository.ErrConcurrentModification) {
			return nil
		}
		return err
	}

	logger.Info("seeded default canonical skills",
		zap.Int("count", added),
		zap.String("version", dict.Version()),
	)
	return nil
}

type defaultSkill struct {
	name     string
	category jdspec.TechLayer
}

var defaults = []defaultSkill{
	{"react", jdspec.LayerFrontend},
	{"vue", jdspec.LayerFrontend},
	{"angular", jdspec.LayerFrontend},
	{"typescript", jdspec.LayerFrontend},
	{"javascript", jdspec.LayerFrontend},
	{"html", jdspec.LayerFrontend},
	{"css", jdspec.LayerFrontend},

	{"golang", jdspec.LayerBackend},
	{"java", jdspec.LayerBackend},
	{"python", jdspec.LayerBackend},
	{"node.js", jdspec.LayerBackend},
	{"c#", jdspec.LayerBackend},
	{"php", jdspec.LayerBackend},
	{"ruby", jdspec.LayerBackend},

	{"postgresql", jdspec.LayerDatabase},
	{"mysql", jdspec.LayerDatabase},
	{"mongodb", jdspec.LayerDatabase},
	{"redis", jdspec.LayerDatabase},
	{"elasticsearch", jdspec.LayerDatabase},

	{"aws", jdspec.LayerCloud},
	{"gcp", jdspec.LayerCloud},
	{"azure", jdspec.LayerCloud},

	{"docker", jdspec.LayerDevops},
	{"kubernetes", jdspec.LayerDevops},
	{"terraform", jdspec.LayerDevops},
	{"jenkins", jdspec.LayerDevops},

	{"git", jdspec.LayerOthers},
	{"graphql", jdspec.LayerOthers},
	{"grpc", jdspec.LayerOthers},
}
