package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// confirm asks a yes/no question. --yes answers for the user; without a
// terminal the answer is no.
func confirm(cmd *cobra.Command, question string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	if !isTerminal() {
		return false
	}

	fmt.Printf("%s [y/N]: ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// askRating prompts for a 1-5 rating until one is given
func askRating() (int, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("How did you sleep? (1-5): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("rating is required (--rating 1-5)")
		}
		r, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && r >= 1 && r <= 5 {
			return r, nil
		}
		fmt.Println("Please enter a number from 1 to 5.")
	}
}

// shortID trims a uuid to its first block for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
