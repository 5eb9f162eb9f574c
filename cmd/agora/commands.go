package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/djwooster/agora-leaderboard/internal/clientstore"
	model "github.com/djwooster/agora-leaderboard/internal/models"
)

// parseMetricSpec lit "Name:unit:pointsPerUnit[:dailyMax]"
func parseMetricSpec(spec string) (model.NewMetricRequest, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return model.NewMetricRequest{}, fmt.Errorf("metric must be Name:unit:pointsPerUnit[:dailyMax], got %q", spec)
	}

	ppu, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return model.NewMetricRequest{}, fmt.Errorf("invalid points per unit in %q", spec)
	}

	m := model.NewMetricRequest{Name: parts[0], Unit: parts[1], PointsPerUnit: ppu}
	if len(parts) == 4 && parts[3] != "" {
		max, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return model.NewMetricRequest{}, fmt.Errorf("invalid daily max in %q", spec)
		}
		m.DailyMax = &max
	}
	return m, nil
}

func touchRecent(store *clientstore.Store, c model.Challenge) {
	_ = store.TouchRecent(clientstore.RecentChallenge{
		ID:         c.ID,
		Name:       c.Name,
		ShareToken: c.ShareToken,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
	})
}

func createCmd() *cobra.Command {
	var name, description, start, end string
	var metricSpecs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a challenge with its metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.NewChallengeRequest{
				Name:        name,
				Description: description,
				StartDate:   start,
				EndDate:     end,
			}
			for _, spec := range metricSpecs {
				m, err := parseMetricSpec(spec)
				if err != nil {
					return err
				}
				req.Metrics = append(req.Metrics, m)
			}

			created, err := NewClient(serverURL).CreateChallenge(req)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			touchRecent(store, created.Challenge)

			color.Green("🎉 Challenge created: %s", created.Name)
			fmt.Printf("Share link (send to your group):\n  %s/challenge/%s\n", serverURL, created.ShareToken)
			color.Yellow("Admin link (keep private):\n  %s/challenge/%s/admin?key=%s", serverURL, created.ShareToken, created.AdminToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "challenge name")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringVar(&start, "start", time.Now().Format(model.DateLayout), "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", time.Now().AddDate(0, 0, 30).Format(model.DateLayout), "end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&metricSpecs, "metric", nil, "metric as Name:unit:pointsPerUnit[:dailyMax] (repeatable)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("metric")

	return cmd
}

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <share-token>",
		Short: "Open a challenge by its share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			challenge, err := NewClient(serverURL).GetChallenge(args[0])
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			touchRecent(store, challenge.Challenge)

			color.Cyan("%s", challenge.Name)
			if challenge.Description != nil {
				fmt.Println(*challenge.Description)
			}
			fmt.Printf("%s – %s\n\n", challenge.StartDate, challenge.EndDate)

			fmt.Println("Scoring:")
			for _, m := range challenge.Metrics {
				line := fmt.Sprintf("  %s: %g pt per %s", m.Name, m.PointsPerUnit, m.Unit)
				if m.DailyMax != nil {
					line += fmt.Sprintf(" (max %g/day)", *m.DailyMax)
				}
				fmt.Println(line)
			}

			if identity, ok := store.Identity(challenge.ID); ok {
				fmt.Printf("\nYou are %s %s here.\n", identity.AvatarEmoji, identity.Name)
			} else {
				fmt.Println("\nNot joined yet: agora join", args[0], "--name <you>")
			}
			return nil
		},
	}
}

func joinCmd() *cobra.Command {
	var name, emoji string

	cmd := &cobra.Command{
		Use:   "join <share-token>",
		Short: "Join a challenge as a new participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL)
			participant, err := client.Join(args[0], model.JoinRequest{Name: name, AvatarEmoji: emoji})
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.SetIdentity(participant.ChallengeID, *participant); err != nil {
				return err
			}

			color.Green("%s Joined as %s", participant.AvatarEmoji, participant.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your display name")
	cmd.Flags().StringVar(&emoji, "emoji", "💪", "avatar emoji")
	cmd.MarkFlagRequired("name")

	return cmd
}

func logCmd() *cobra.Command {
	var date string
	var values []string

	cmd := &cobra.Command{
		Use:   "log <share-token>",
		Short: "Log today's values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL)

			challenge, err := client.GetChallenge(args[0])
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			identity, ok := store.Identity(challenge.ID)
			if !ok {
				return fmt.Errorf("not joined yet: run agora join %s --name <you>", args[0])
			}

			// métriques adressées par nom côté CLI
			metricByName := map[string]string{}
			for _, m := range challenge.Metrics {
				metricByName[strings.ToLower(m.Name)] = m.ID
			}

			req := model.LogBatchRequest{LogDate: date}
			for _, v := range values {
				name, raw, found := strings.Cut(v, "=")
				if !found {
					return fmt.Errorf("value must be metric=amount, got %q", v)
				}
				metricID, ok := metricByName[strings.ToLower(strings.TrimSpace(name))]
				if !ok {
					return fmt.Errorf("unknown metric %q", name)
				}
				amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
				if err != nil {
					return fmt.Errorf("invalid amount in %q", v)
				}
				req.Entries = append(req.Entries, model.LogEntryRequest{MetricID: metricID, Value: amount})
			}

			if err := client.UpsertLogs(identity.ID, req); err != nil {
				return err
			}

			color.Green("✓ Logged for %s %s", identity.AvatarEmoji, identity.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "log date (YYYY-MM-DD, default today)")
	cmd.Flags().StringArrayVar(&values, "value", nil, "value as MetricName=amount (repeatable)")
	cmd.MarkFlagRequired("value")

	return cmd
}

func boardCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "board <share-token>",
		Short: "Print the leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL)

			challenge, err := client.GetChallenge(args[0])
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			touchRecent(store, challenge.Challenge)
			identity, _ := store.Identity(challenge.ID)

			if err := printBoard(client, args[0], challenge.Name, identity.ID); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			// refetch complet à chaque notification du serveur
			conn, _, err := websocket.DefaultDialer.Dial(client.WebsocketURL(args[0]), nil)
			if err != nil {
				return fmt.Errorf("could not subscribe to updates: %w", err)
			}
			defer conn.Close()

			for {
				var event json.RawMessage
				if err := conn.ReadJSON(&event); err != nil {
					return nil
				}
				if err := printBoard(client, args[0], challenge.Name, identity.ID); err != nil {
					return err
				}
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep the board updated on changes")

	return cmd
}

func printBoard(client *Client, shareToken, challengeName, selfID string) error {
	entries, err := client.GetLeaderboard(shareToken)
	if err != nil {
		return err
	}

	color.Cyan("\n%s — %s", challengeName, time.Now().Format("Jan 2 15:04:05"))
	if len(entries) == 0 {
		fmt.Println("No participants yet. Be the first to log your activity!")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	fmt.Fprintln(w, "#\t\tName\tToday\tStreak\tScore")
	for _, e := range entries {
		today := "—"
		if e.TodayLogged {
			today = fmt.Sprintf("+%g", e.TodayPoints)
		}
		streak := "—"
		if e.Streak > 0 {
			streak = fmt.Sprintf("%dd 🔥", e.Streak)
		}
		name := e.Participant.Name
		if e.Participant.ID == selfID {
			name += " (you)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%g\n",
			e.Rank, e.Participant.AvatarEmoji, name, today, streak, e.TotalPoints)
	}
	return w.Flush()
}

func recentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently visited challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			recent := store.Recent()
			if len(recent) == 0 {
				fmt.Println("No challenges yet. Create one or ask someone for their challenge link.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
			fmt.Fprintln(w, "Name\tDates\tToken\tVisited")
			for _, rc := range recent {
				fmt.Fprintf(w, "%s\t%s – %s\t%s\t%s\n",
					rc.Name, rc.StartDate, rc.EndDate, rc.ShareToken, rc.VisitedAt.Format("Jan 2"))
			}
			return w.Flush()
		},
	}
}
