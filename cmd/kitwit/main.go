package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/app"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/config"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/profile"
	"go.uber.org/fx"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadProfile(profile.ConfigPath(profileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load profile %q: %v\n", profileName, err)
		fmt.Fprintf(os.Stderr, "create %s with api_base_url and init_data set\n", profile.ConfigPath(profileName))
		os.Exit(1)
	}
	if cfg.APIBaseURL == "" {
		fmt.Fprintf(os.Stderr, "error: profile %q has no api_base_url\n", profileName)
		os.Exit(1)
	}

	fx.New(
		app.Module(app.Params{ProfileName: profileName, Config: cfg}),
	).Run()
}
