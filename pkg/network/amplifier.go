package network

import (
	"fmt"

	"github.com/chazu/intcode/pkg/intcode"
)

// Chain runs one amplifier per phase setting in series. Each amplifier is
// given its phase, then the previous amplifier's output; the first one gets
// signal. Returns the last amplifier's output.
func Chain(program []int64, phases []int64, signal int64) (int64, error) {
	boot := intcode.New(program)
	for i, phase := range phases {
		amp := boot.Clone()
		amp.Input(phase, signal)
		out, ok, err := amp.Run()
		if err != nil {
			return 0, fmt.Errorf("network: amplifier %d: %w", i, err)
		}
		if !ok {
			return 0, fmt.Errorf("network: amplifier %d produced no output", i)
		}
		signal = out
	}
	return signal, nil
}

// FeedbackLoop connects the amplifiers in a ring and runs them round-robin
// until the last one halts. Returns the last amplifier's final output.
func FeedbackLoop(program []int64, phases []int64, signal int64) (int64, error) {
	if len(phases) == 0 {
		return signal, nil
	}

	boot := intcode.New(program)
	amps := make([]*intcode.Computer, len(phases))
	for i, phase := range phases {
		amps[i] = boot.Clone()
		amps[i].Input(phase)
	}

	last := len(amps) - 1
	for i := 0; ; i = (i + 1) % len(amps) {
		amp := amps[i]
		if amp.State() == intcode.Done {
			if i == last {
				break
			}
			continue
		}

		amp.Input(signal)
		out, ok, err := amp.Run()
		if err != nil {
			return 0, fmt.Errorf("network: amplifier %d: %w", i, err)
		}
		if ok {
			signal = out
		}
		amp.DrainOutput()

		if i == last && amp.State() == intcode.Done {
			break
		}
	}

	out, ok := amps[last].LastOutput()
	if !ok {
		return 0, fmt.Errorf("network: amplifier %d produced no output", last)
	}
	return out, nil
}

// MaxPhaseOutput tries every permutation of phases and returns the largest
// output with the permutation that produced it.
func MaxPhaseOutput(program []int64, phases []int64, loop bool) (int64, []int64, error) {
	run := Chain
	if loop {
		run = FeedbackLoop
	}

	var best int64
	var bestPhases []int64
	found := false

	err := permute(append([]int64(nil), phases...), 0, func(p []int64) error {
		out, err := run(program, p, 0)
		if err != nil {
			return err
		}
		if !found || out > best {
			best, found = out, true
			bestPhases = append([]int64(nil), p...)
		}
		return nil
	})
	return best, bestPhases, err
}

// permute calls fn with every ordering of values[k:], swapping in place.
func permute(values []int64, k int, fn func([]int64) error) error {
	if k == len(values) {
		return fn(values)
	}
	for i := k; i < len(values); i++ {
		values[k], values[i] = values[i], values[k]
		if err := permute(values, k+1, fn); err != nil {
			return err
		}
		values[k], values[i] = values[i], values[k]
	}
	return nil
}
