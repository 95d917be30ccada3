package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

func listPlatforms(ctx context.Context, client *demozoo.Client) error {
	platforms, err := client.Platforms(ctx)
	if err != nil {
		return fmt.Errorf("fetch platforms: %w", err)
	}

	fmt.Printf("Platforms (%d):\n\n", len(platforms))
	fmt.Printf("  %5s  %s\n", "ID", "NAME")
	fmt.Println("  " + strings.Repeat("-", 40))
	for _, p := range platforms {
		fmt.Printf("  %5d  %s\n", p.ID, p.Name)
	}
	return nil
}
