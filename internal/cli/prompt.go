package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/photo-clusters/internal/durationutil"
)

// stdin is shared across prompts so buffered input is not lost between
// consecutive questions.
var stdin = bufio.NewReader(os.Stdin)

// readLine reads one line of input. On read failure (EOF included) it
// returns the empty string, which every prompt treats as "take the default".
func readLine() string {
	input, err := stdin.ReadString('\n')
	if err != nil && input == "" {
		log.Warn().Err(err).Msg("Failed to read input, using default")
		return ""
	}
	return strings.TrimSpace(input)
}

// PromptForDirectory prompts the user interactively for a directory path.
// Returns the current directory if the user enters nothing.
func PromptForDirectory() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	fmt.Printf("Directory [%s]: ", cwd)

	input := readLine()
	if input == "" {
		return cwd
	}
	return input
}

// PromptString prompts for a free-form string, returning defaultValue on
// empty input.
func PromptString(label, defaultValue string) string {
	fmt.Printf("%s [%s]: ", label, defaultValue)

	input := readLine()
	if input == "" {
		return defaultValue
	}
	return input
}

// PromptDuration prompts for a positive duration, re-asking until the input
// parses. Empty input takes the default.
func PromptDuration(label, defaultValue string) time.Duration {
	for {
		fmt.Printf("%s [%s]: ", label, defaultValue)

		input := readLine()
		if input == "" {
			input = defaultValue
		}

		d, err := durationutil.Parse(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if d <= 0 {
			fmt.Println("Error: duration must be positive")
			continue
		}
		return d
	}
}

// PromptInt prompts for an integer no smaller than min, re-asking until the
// input qualifies. Empty input takes the default.
func PromptInt(label string, defaultValue, min int) int {
	for {
		fmt.Printf("%s [%d]: ", label, defaultValue)

		input := readLine()
		if input == "" {
			return defaultValue
		}

		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("Error: %q is not a valid integer\n", input)
			continue
		}
		if n < min {
			fmt.Printf("Error: value must be at least %d\n", min)
			continue
		}
		return n
	}
}

// PromptBool prompts for a yes/no answer, re-asking until the input is
// recognizable. Empty input takes the default.
func PromptBool(label string, defaultValue bool) bool {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}

	for {
		fmt.Printf("%s [%s]: ", label, hint)

		input := readLine()
		if input == "" {
			return defaultValue
		}

		value, err := ParseBool(input)
		if err != nil {
			fmt.Println("Error: please answer yes or no")
			continue
		}
		return value
	}
}

// ParseBool interprets a human yes/no answer.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes":
		return true, nil
	case "0", "f", "false", "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized answer %q", s)
}
