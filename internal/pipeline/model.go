package pipeline

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/kinetic-reader/internal/generate"
)

// Models above this many billions of parameters are too slow for
// interactive restructuring on typical local hardware.
const maxAutoSelectParamsB = 9.0

var paramSizeRe = regexp.MustCompile(`([\d.]+)\s*([BMKbmk])`)

// parseParamSize converts a backend parameter-size label like "7.6B",
// "815M" or "70b" into billions of parameters. Unparseable labels yield 0.
func parseParamSize(s string) float64 {
	m := paramSizeRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch strings.ToUpper(m[2]) {
	case "B":
		return num
	case "M":
		return num / 1e3
	case "K":
		return num / 1e6
	}
	return 0
}

// pickBestModel returns the largest installed model at or under the
// auto-select cap, or the smallest available model if everything exceeds
// it. Returns "" for an empty listing.
func pickBestModel(details []generate.ModelDetail) string {
	if len(details) == 0 {
		return ""
	}

	ranked := make([]generate.ModelDetail, len(details))
	copy(ranked, details)
	sort.SliceStable(ranked, func(i, j int) bool {
		return parseParamSize(ranked[i].ParamSize) < parseParamSize(ranked[j].ParamSize)
	})

	best := ranked[0]
	for _, m := range ranked {
		if parseParamSize(m.ParamSize) <= maxAutoSelectParamsB {
			best = m
		}
	}
	return best.Name
}

// selectModel decides which model a run uses. An explicitly requested
// model must be installed. A previously saved model is reused only if it
// is still installed (self-healing when it was uninstalled between
// runs); otherwise the best installed model is auto-selected and the
// choice persisted.
func (p *implPipeline) selectModel(ctx context.Context, health generate.Health, requested string) (string, error) {
	if len(health.Models) == 0 {
		return "", ErrNoModelsInstalled
	}

	if requested != "" {
		if check := p.gen.CheckModel(ctx, requested); check.Available {
			return check.ResolvedModel, nil
		}
		return "", ErrModelNotFound
	}

	if p.models != nil {
		saved, err := p.models.SavedModel()
		if err != nil {
			p.logger.Warn(ctx, "Failed to read saved model: %v", err)
		} else if saved != "" {
			if check := p.gen.CheckModel(ctx, saved); check.Available {
				return check.ResolvedModel, nil
			}
			p.logger.Info(ctx, "Saved model %q no longer installed, auto-selecting", saved)
		}
	}

	best := pickBestModel(health.Details)
	if best == "" {
		return "", ErrNoModelsInstalled
	}
	if p.models != nil {
		if err := p.models.SaveModel(best); err != nil {
			p.logger.Warn(ctx, "Failed to persist model selection: %v", err)
		}
	}
	return best, nil
}
