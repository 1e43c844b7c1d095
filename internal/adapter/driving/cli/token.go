package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/mergemetrics/internal/adapter/driving/cli/report"
	"github.com/ericfisherdev/mergemetrics/internal/config"
)

// TokenPrompt asks for a GitHub token when none is configured. It only asks
// when Interactive is set; the token is never persisted.
type TokenPrompt struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
	Palette     report.Palette
}

// Resolve returns configured when it is set, otherwise a token read from In.
func (p TokenPrompt) Resolve(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if !p.Interactive {
		return "", config.ErrMissingToken
	}

	fmt.Fprintln(p.Out, p.Palette.Neutral("Environment variable "+config.TokenEnvVar+" not found."))
	fmt.Fprintln(p.Out, "1. Visit https://github.com/settings/tokens")
	fmt.Fprintln(p.Out, "2. Generate a token with the repo scope")
	fmt.Fprint(p.Out, "3. Enter the generated token: ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return "", config.ErrMissingToken
	}
	return token, nil
}
