package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"yi_connect_echo/internal/config"
	"yi_connect_echo/internal/logger"
	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
	"yi_connect_echo/internal/services"
)

func main() {
	roleStr := flag.String("role", string(models.UserRoleMember), "User role whose menu is printed")
	path := flag.String("path", "", "Resolve this route path against the menu")
	size := flag.Int("primary", navigation.DefaultPrimarySize, "Number of primary groups")
	useDB := flag.Bool("db", false, "Read menus from DATABASE_URL instead of the built-in catalog")
	asJSON := flag.Bool("json", false, "Print the view as JSON")
	flag.Parse()

	cfg := config.Load()
	logger.SetDefault("yi-connect-navctl", "", cfg.LogLevel)

	role := models.ParseUserRole(*roleStr)
	if string(role) != *roleStr {
		fmt.Fprintf(os.Stderr, "unknown role %q, using %q\n", *roleStr, role)
	}
	user := services.NavUser{UserID: "navctl", Role: role}

	source := services.NewMenuSource(nil, nil, 0)
	if *useDB {
		if cfg.DatabaseURL == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL is not set")
			os.Exit(1)
		}
		db, err := services.InitDB(cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		source = services.NewMenuSource(db, nil, 0)
	}

	raw, err := source.Groups(context.Background(), user.Variant(), role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	groups := navigation.BuildGroups(raw, navigation.OptionsFor(user.Variant()), services.DefaultIcons())
	view := navigation.BuildView(groups, *path, navigation.State{}, *size, true)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("variant %s, role %s\n", user.Variant(), role)
	printGroups("primary", view.Primary)
	printGroups(fmt.Sprintf("overflow (%d)", view.OverflowCount), view.Overflow)

	if *path != "" {
		match := navigation.Resolve(*path, groups)
		if !match.Found {
			fmt.Printf("\n%s: no match, falls back to %s\n", *path, view.EffectiveGroupID)
			return
		}
		fmt.Printf("\n%s: group %s, item %s (%s)\n", *path, match.Group.ID, match.Item.Href, match.Item.Label)
	}
}

func printGroups(title string, groups []navigation.NavGroup) {
	fmt.Printf("\n%s\n", title)
	for _, g := range groups {
		fmt.Printf("  [%s] %s\n", g.ID, g.GroupLabel)
		for _, it := range g.Items {
			label := it.Label
			if it.ParentLabel != "" {
				label = it.ParentLabel + " / " + label
			}
			fmt.Printf("      %-32s %s\n", it.Href, label)
		}
	}
}
