package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Achintharya/eightfold-bot/pkg/agent"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36")).
			Bold(true)
	agentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var replExitWords = map[string]bool{
	"exit":    true,
	"quit":    true,
	"bye":     true,
	"goodbye": true,
}

// runREPL drives an interactive conversation on stdin/stdout
func runREPL(deps agent.Options) error {
	session := agent.NewSession(deps)
	ctx := context.Background()

	fmt.Println(bannerStyle.Render("Company Research Agent"))
	fmt.Println(dimStyle.Render("Name a company to research it, or type \"help\". Type \"exit\" to quit."))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := scanner.Text()

		response := session.ProcessInput(ctx, input)
		fmt.Println(agentStyle.Render(response))
		fmt.Println()

		if replExitWords[strings.ToLower(strings.TrimSpace(input))] {
			return nil
		}
	}
}
