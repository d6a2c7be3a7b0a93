package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"astroengine/internal/dasha"
	"astroengine/internal/ephemeris"
	"astroengine/internal/zodiac"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "astroctl",
		Short:         "Astrological derivations from raw longitudes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("compact", false, "print JSON on one line")
	root.AddCommand(newSignCmd(), newNakshatraCmd(), newDignityCmd(), newDashaCmd(), newHouseCmd())
	return root
}

func newSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <longitude>",
		Short: "Classify a tropical longitude into its sign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lon, err := parseLongitude(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, zodiac.ClassifySign(lon))
		},
	}
}

func newNakshatraCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nakshatra <sidereal-longitude>",
		Short: "Classify a sidereal longitude into its nakshatra and pada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lon, err := parseLongitude(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, zodiac.ClassifyNakshatra(lon))
		},
	}
}

type dignityResult struct {
	Body    zodiac.Body    `json:"body"`
	Sign    zodiac.Sign    `json:"sign"`
	Dignity zodiac.Dignity `json:"dignity"`
}

func newDignityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dignity <body> <longitude>",
		Short: "Classify a body's dignity at a tropical longitude",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := zodiac.ParseBody(args[0])
			if err != nil {
				return err
			}
			lon, err := parseLongitude(args[1])
			if err != nil {
				return err
			}
			sign := zodiac.ClassifySign(lon).Sign
			return printJSON(cmd, dignityResult{
				Body:    body,
				Sign:    sign,
				Dignity: zodiac.ClassifyDignity(body, sign),
			})
		},
	}
}

func newDashaCmd() *cobra.Command {
	var (
		moon  float64
		birth string
		at    string
	)
	cmd := &cobra.Command{
		Use:   "dasha",
		Short: "Build the Vimshottari timeline from the sidereal moon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			born, err := time.Parse(time.RFC3339, birth)
			if err != nil {
				return fmt.Errorf("parse --birth: %w", err)
			}
			now := time.Now()
			if at != "" {
				if now, err = time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
			}
			return printJSON(cmd, dasha.Calculate(zodiac.Normalize(moon), born, now))
		},
	}
	cmd.Flags().Float64Var(&moon, "moon", 0, "sidereal moon longitude in degrees")
	cmd.Flags().StringVar(&birth, "birth", "", "birth instant, RFC3339")
	cmd.Flags().StringVar(&at, "at", "", "instant used to locate the current period, RFC3339 (default now)")
	_ = cmd.MarkFlagRequired("moon")
	_ = cmd.MarkFlagRequired("birth")
	return cmd
}

type houseResult struct {
	House     int                  `json:"house"`
	System    string               `json:"system"`
	Placement zodiac.SignPlacement `json:"placement"`
}

func newHouseCmd() *cobra.Command {
	var (
		cusps     []float64
		system    string
		ascendant float64
	)
	cmd := &cobra.Command{
		Use:   "house <longitude>",
		Short: "Assign a longitude to one of twelve houses",
		Long: "Assign a longitude to one of twelve houses. Placidus takes the cusps\n" +
			"from --cusps; whole sign derives them from --ascendant.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lon, err := parseLongitude(args[0])
			if err != nil {
				return err
			}
			hs, err := ephemeris.ParseHouseSystem(system)
			if err != nil {
				return err
			}
			var table zodiac.Cusps
			switch hs {
			case ephemeris.WholeSign:
				if !cmd.Flags().Changed("ascendant") {
					return fmt.Errorf("--ascendant is required for %s houses", hs)
				}
				table = zodiac.WholeSignCusps(zodiac.Normalize(ascendant))
			default:
				if len(cusps) != len(table) {
					return fmt.Errorf("--cusps needs exactly %d values, got %d", len(table), len(cusps))
				}
				copy(table[:], cusps)
			}
			return printJSON(cmd, houseResult{
				House:     zodiac.AssignHouse(zodiac.Normalize(lon), table),
				System:    hs.String(),
				Placement: zodiac.ClassifySign(lon),
			})
		},
	}
	cmd.Flags().StringVar(&system, "system", "placidus", "house system: placidus (P) or whole_sign (W)")
	cmd.Flags().Float64SliceVar(&cusps, "cusps", nil, "twelve comma-separated cusp longitudes")
	cmd.Flags().Float64Var(&ascendant, "ascendant", 0, "ascendant longitude for whole sign houses")
	return cmd
}

func parseLongitude(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid longitude %q", s)
	}
	return v, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if compact, _ := cmd.Flags().GetBool("compact"); !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
