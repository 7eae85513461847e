package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/chixitown/site/internal/adapters"
	"github.com/chixitown/site/internal/analytics"
	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/urfave/cli/v2"
)

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "fetch the 7-day analytics summary once and print it as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Usage: "project ID, used when VERCEL_PROJECT_ID is unset"},
			&cli.StringFlag{Name: "team", Usage: "team ID, used when VERCEL_ORG_ID and VERCEL_TEAM_ID are unset"},
		},
		Action: summary,
	}
}

func summary(c *cli.Context) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	query := url.Values{}
	if p := c.String("project"); p != "" {
		query.Set("projectId", p)
	}
	if t := c.String("team"); t != "" {
		query.Set("teamId", t)
	}

	vercelEnv, err := analytics.EnvFromOS()
	if err != nil {
		return err
	}

	resp, err := func() (any, error) {
		cfg, err := analytics.Resolve(vercelEnv, query)
		if err != nil {
			return nil, err
		}
		adapter := adapters.NewVercelAdapter(e.cfg.VercelAPIBaseURL, e.cfg.UpstreamTimeout)
		return analytics.NewService(adapter).Summary(c.Context, cfg)
	}()

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err != nil {
		appErr := apperrors.ToAppError(err)
		if encErr := enc.Encode(appErr.Response()); encErr != nil {
			return encErr
		}
		return fmt.Errorf("summary failed: %s", appErr.Code)
	}
	return enc.Encode(resp)
}
