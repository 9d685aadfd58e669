package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// serializeBase writes the attribute set every built-in controller shares,
// per the DescriptionTree encoding's Controller node: type, name, goal,
// goal_is_relative, kp, kv, completion_times.
func (b *base) serializeBase(node *tree.Node, typeName string) {
	node.SetString("type", typeName)
	node.SetString("name", b.name)
	node.SetMatrix("goal", b.goal)
	node.SetBool("goal_is_relative", b.goalIsRelative)
	node.SetMatrix("kp", b.kp)
	node.SetMatrix("kv", b.kv)
	node.SetString("completion_times", formatCompletionTimes(b.completionTimes))
}

// deserializeBase reads the shared attribute set, validating the
// monotonic-non-decreasing invariant on completion_times.
func deserializeBase(node *tree.Node, sys system.System) (base, error) {
	name, ok := node.GetString("name")
	if !ok {
		return base{}, fmt.Errorf("%w: controller missing name attribute", shared.ErrMissingAttribute)
	}
	goal, ok := node.GetMatrix("goal")
	if !ok {
		return base{}, fmt.Errorf("%w: controller %q missing goal attribute", shared.ErrMissingAttribute, name)
	}
	kp, ok := node.GetMatrix("kp")
	if !ok {
		return base{}, fmt.Errorf("%w: controller %q missing kp attribute", shared.ErrMissingAttribute, name)
	}
	kv, ok := node.GetMatrix("kv")
	if !ok {
		return base{}, fmt.Errorf("%w: controller %q missing kv attribute", shared.ErrMissingAttribute, name)
	}
	goalIsRelative, _ := node.GetBool("goal_is_relative") // defaults to false

	var completionTimes []float64
	if raw, ok := node.GetString("completion_times"); ok && raw != "" {
		var err error
		completionTimes, err = parseCompletionTimes(raw)
		if err != nil {
			return base{}, fmt.Errorf("%w: controller %q: %v", shared.ErrParseError, name, err)
		}
	}
	if !nonDecreasing(completionTimes) {
		return base{}, fmt.Errorf("%w: controller %q completion_times must be monotonically non-decreasing", shared.ErrInvalidInput, name)
	}

	return base{
		name:            name,
		goal:            goal,
		goalIsRelative:  goalIsRelative,
		kp:              kp,
		kv:              kv,
		completionTimes: completionTimes,
		sys:             sys,
	}, nil
}

func formatCompletionTimes(times []float64) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func parseCompletionTimes(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad completion_times value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func nonDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}
