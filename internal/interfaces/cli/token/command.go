package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"prognosis/internal/infrastructure/auth"
	"prognosis/internal/infrastructure/config"
)

var (
	env     string
	subject string
)

// NewCommand mints access tokens for API clients. Tokens are issued out
// of band, the server itself only verifies them.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token",
		Long:  `Generate a signed JWT access token for the read API, using the configured signing secret.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Token subject, usually the client name (required)")
	cmd.MarkFlagRequired("subject")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	signed, err := jwtService.Generate(subject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Printf("Subject:    %s\n", subject)
	fmt.Printf("Expires in: %d minutes\n", jwtService.AccessExpMinutes())
	fmt.Printf("Token:      %s\n", signed)

	return nil
}
