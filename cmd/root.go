package cmd

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/epidemic-sim/epidemic-sim/internal/runstore"
	"github.com/epidemic-sim/epidemic-sim/sim"
)

var (
	// CLI flags shared by run and optimize
	cityName        string  // Simulated city name
	population      int     // City population
	areaKm2         float64 // City area in km²
	seed            int64   // Master seed for city/virus generation
	logLevel        string  // Log verbosity level
	virusName       string  // Virus preset name (see viruses.yaml)
	virusConfigPath string  // Path to the virus preset YAML file
	rValue          float64 // Basic reproduction number override
	initialCases    int     // Seeded initial cases
	simulationDays  int     // Days to simulate
	outputPath      string  // JSON report output path ("" = skip)
	dbPath          string  // SQLite run archive path ("" = skip)

	// CLI flags for run: continuous intervention intensities
	socialDistancing    float64
	masking             float64
	testingRate         float64
	contactTracing      float64
	travelRestrictions  float64
	vaccinationCampaign float64

	// CLI flags for optimize
	workers int // Parallel candidate evaluations (0 = GOMAXPROCS)
	topN    int // Ranked candidates to print
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epidemic-sim",
	Short: "District-level epidemic simulator and policy optimizer",
}

// resolveVirus picks the virus parameters for a run: preset by name when
// given, baseline otherwise, with an optional r0 override.
func resolveVirus() sim.VirusParameters {
	virus := sim.DefaultVirusParameters()
	if virusName != "" {
		preset := GetVirusConfig(virusConfigPath, virusName)
		if preset == nil {
			logrus.Fatalf("Unknown virus preset %q in %s", virusName, virusConfigPath)
		}
		virus = *preset
	}
	if rValue > 0 {
		virus.R0 = rValue
	}
	return virus
}

// buildCity generates the synthetic city for a run from the master seed.
func buildCity() *sim.City {
	rng := sim.NewPartitionedRNG(seed)
	city, err := sim.BuildCity(cityName, population, areaKm2, rng.ForSubsystem(sim.SubsystemCity))
	if err != nil {
		logrus.Fatalf("Invalid city parameters: %v", err)
	}
	logrus.Infof("Built city %q: population=%s, districts=%d",
		city.Name, humanize.Comma(int64(city.Population)), len(city.Districts))
	return city
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// writeJSON writes a report to outputPath when set.
func writeJSON(v any) {
	if outputPath == "" {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Fatalf("Failed to encode report: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		logrus.Fatalf("Failed to write %s: %v", outputPath, err)
	}
	logrus.Infof("Report written to %s", outputPath)
}

// openStore opens the run archive when --db is set.
func openStore() *runstore.Store {
	if dbPath == "" {
		return nil
	}
	store, err := runstore.Open(dbPath)
	if err != nil {
		logrus.Fatalf("Failed to open run archive: %v", err)
	}
	return store
}

// runCmd executes a single outbreak simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one outbreak simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		virus := resolveVirus()
		request := &sim.SimulationRequest{
			CityName:       cityName,
			Population:     population,
			VirusName:      virusName,
			InitialCases:   initialCases,
			RValue:         virus.R0,
			SimulationDays: simulationDays,
			InterventionMeasures: []sim.InterventionMeasure{
				{Type: "social_distancing", Effectiveness: socialDistancing},
				{Type: "masking", Effectiveness: masking},
				{Type: "testing", Coverage: testingRate},
				{Type: "contact_tracing", Effectiveness: contactTracing},
				{Type: "travel_restrictions", Effectiveness: travelRestrictions},
				{Type: "vaccination", Coverage: vaccinationCampaign * 100},
			},
		}
		request.ApplyDefaults()
		if err := request.Validate(); err != nil {
			logrus.Fatalf("Invalid request: %v", err)
		}

		city := buildCity()

		startTime := time.Now()
		result, err := sim.RunOutbreak(city, virus, request.InterventionParams(), request.SimulationDays, request.InitialCases)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		report := sim.BuildReport(result, startTime)

		logrus.Infof("Simulation finished in %v: days=%d effective_r0=%.3f", time.Since(startTime), result.SimulationDays, result.EffectiveR0)
		logrus.Infof("Summary: total_cases=%s peak_active=%s peak_hospitalized=%s deaths=%s contained=%v",
			humanize.Comma(int64(report.Summary.TotalCases)),
			humanize.Comma(int64(report.Summary.PeakActiveCases)),
			humanize.Comma(int64(report.Summary.PeakHospitalized)),
			humanize.Comma(int64(report.Summary.TotalDeaths)),
			report.Summary.Contained)

		writeJSON(report)
		if store := openStore(); store != nil {
			defer store.Close()
			if err := store.SaveSimulation(request, report); err != nil {
				logrus.Fatalf("Failed to archive run: %v", err)
			}
			logrus.Infof("Run %s archived to %s", report.ID, dbPath)
		}
	},
}

// optimizeCmd ranks candidate policy combinations for the configured city
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rank candidate policy combinations",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if simulationDays <= 0 {
			logrus.Fatalf("Invalid simulation days: %d", simulationDays)
		}
		virus := resolveVirus()
		city := buildCity()

		optimizer := sim.NewPolicyOptimizer()
		optimizer.Workers = workers
		candidates := sim.DefaultStrategy{}.Candidates(optimizer.Catalog)
		logrus.Infof("Evaluating %d candidate policy combinations", len(candidates))

		startTime := time.Now()
		best, ranked, err := optimizer.Best(city, virus, candidates, simulationDays, initialCases)
		if err != nil {
			logrus.Fatalf("Policy ranking failed: %v", err)
		}
		logrus.Infof("Ranking finished in %v", time.Since(startTime))

		limit := topN
		if limit > len(ranked) {
			limit = len(ranked)
		}
		for i := 0; i < limit; i++ {
			r := ranked[i]
			logrus.Infof("#%d overall=%.1f health=%.1f economic=%.1f social=%.1f equity=%.1f policy=%v",
				i+1, r.Impact.OverallScore, r.Impact.HealthScore, r.Impact.EconomicScore,
				r.Impact.SocialScore, r.Impact.EquityScore, r.Decision)
		}
		for _, step := range best.Plan {
			logrus.Infof("Plan [%s=%s, %s]: %v", step.Dimension, step.Level, step.Timeline, step.ImplementationSteps)
		}

		report := sim.BuildPolicyReport(city, ranked, best, startTime)
		writeJSON(report)
		if store := openStore(); store != nil {
			defer store.Close()
			if err := store.SavePolicyRun(report); err != nil {
				logrus.Fatalf("Failed to archive run: %v", err)
			}
			logrus.Infof("Run %s archived to %s", report.ID, dbPath)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{runCmd, optimizeCmd} {
		c.Flags().StringVar(&cityName, "city", "Sample City", "Simulated city name")
		c.Flags().IntVar(&population, "population", 1_000_000, "City population")
		c.Flags().Float64Var(&areaKm2, "area", 250, "City area in km²")
		c.Flags().Int64Var(&seed, "seed", 42, "Master seed for city generation")
		c.Flags().StringVar(&logLevel, "log-level", "info", "Log verbosity (debug, info, warn, error)")
		c.Flags().StringVar(&virusName, "virus", "", "Virus preset name")
		c.Flags().StringVar(&virusConfigPath, "virus-config", "viruses.yaml", "Virus preset YAML file")
		c.Flags().Float64Var(&rValue, "r0", 0, "Basic reproduction number override")
		c.Flags().IntVar(&initialCases, "initial-cases", 100, "Seeded initial cases")
		c.Flags().IntVar(&simulationDays, "days", 90, "Days to simulate")
		c.Flags().StringVar(&outputPath, "output", "", "Write the JSON report to this path")
		c.Flags().StringVar(&dbPath, "db", "", "Archive the run in this SQLite database")
	}

	runCmd.Flags().Float64Var(&socialDistancing, "social-distancing", 0, "Social distancing intensity (0-1)")
	runCmd.Flags().Float64Var(&masking, "masking", 0, "Masking intensity (0-1)")
	runCmd.Flags().Float64Var(&testingRate, "testing-rate", 0, "Daily testing coverage (0-1)")
	runCmd.Flags().Float64Var(&contactTracing, "contact-tracing", 0, "Contact tracing intensity (0-1)")
	runCmd.Flags().Float64Var(&travelRestrictions, "travel-restrictions", 0, "Travel restriction intensity (0-1)")
	runCmd.Flags().Float64Var(&vaccinationCampaign, "vaccination-campaign", 0, "Daily vaccination rate (0-1)")

	optimizeCmd.Flags().IntVar(&workers, "workers", 0, "Parallel candidate evaluations (0 = all CPUs)")
	optimizeCmd.Flags().IntVar(&topN, "top", 10, "Ranked candidates to print")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(optimizeCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
