package configloader

import (
	"fmt"
	"slices"

	"dario.cat/mergo"

	"github.com/yaklabco/md2docx/pkg/config"
)

// merge returns base overlaid with override. Neither input is modified.
//   - Scalars: a non-zero override value wins; zero means unset.
//   - Slices: a non-nil override replaces base, even when empty, so a file
//     can clear inherited ignore patterns with "ignore: []".
//   - Recursive can only be switched on.
func merge(base, override *config.Config) (*config.Config, error) {
	if base == nil {
		return override.Clone(), nil
	}
	if override == nil {
		return base.Clone(), nil
	}

	result := base.Clone()
	if err := mergo.Merge(result, override.Clone(), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge config: %w", err)
	}

	// mergo treats empty slices as unset.
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return result, nil
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) (*config.Config, error) {
	if len(configs) == 0 {
		return nil, nil
	}

	result := configs[0].Clone()
	for _, next := range configs[1:] {
		var err error
		if result, err = merge(result, next); err != nil {
			return nil, err
		}
	}
	return result, nil
}
