package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"microgrid-planner/internal/analysis"
	"microgrid-planner/internal/config"
	"microgrid-planner/internal/data"
	"microgrid-planner/internal/generation"
	"microgrid-planner/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "turbines":
		cmdTurbines(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --weather weather.json --config examples/scenario.yaml --out results/dispatch.csv")
	fmt.Println("  cli turbines")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate outputs CSV with action=CHARGING/IDLE/DISCHARGING per hour")
	fmt.Println("  - weather JSON comes from the fetch-weather tool")
	fmt.Println("  - turbines lists the built-in turbine catalog")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	weatherPath := fs.String("weather", "", "Path to weather JSON (from fetch-weather)")
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	outPath := fs.String("out", "results/dispatch.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *weatherPath == "" || *cfgPath == "" {
		fmt.Println("--weather and --config are required")
		os.Exit(2)
	}

	wf, err := data.LoadWeatherJSON(*weatherPath)
	if err != nil {
		panic(err)
	}
	site := wf.ToSiteProfile()

	scenario, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	load, err := data.SynthesizeLoad(scenario.Load.Profile, scenario.Load.AnnualConsumptionGWh, site.Hours())
	if err != nil {
		panic(err)
	}

	assets, err := scenario.Assets()
	if err != nil {
		panic(err)
	}

	engine := sim.New()
	result, err := engine.Run(site, load, assets, scenario.ToStorageAsset(), scenario.ToGridConnection())
	if err != nil {
		panic(err)
	}

	kpis, err := analysis.Analyze(result, assets, scenario.ToStorageAsset(), scenario.ToEconomicConfig())
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WriteHourlyCSV(*outPath, result.Records); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(result.Records), *outPath)
	fmt.Printf("Run %s over %d hours\n\n", result.RunID, result.HorizonHours)
	fmt.Printf("Load          %12.0f kWh\n", kpis.TotalLoadKWh)
	fmt.Printf("Generation    %12.0f kWh (solar %.0f / wind %.0f)\n",
		kpis.TotalGenerationKWh, kpis.TotalSolarKWh, kpis.TotalWindKWh)
	fmt.Printf("Grid import   %12.0f kWh\n", kpis.TotalImportKWh)
	fmt.Printf("Grid export   %12.0f kWh\n", kpis.TotalExportKWh)
	fmt.Printf("Curtailment   %12.0f kWh\n", kpis.TotalCurtailmentKWh)
	fmt.Printf("Unmet load    %12.0f kWh over %d hours\n", kpis.UnmetLoadKWh, kpis.UnmetLoadHours)
	fmt.Printf("\n")
	fmt.Printf("Renewable fraction  %6.1f%%\n", 100*kpis.RenewableFraction)
	fmt.Printf("Self-consumption    %6.1f%%\n", 100*kpis.SelfConsumption)
	fmt.Printf("Storage cycles      %6.1f\n", kpis.StorageCycles)
	fmt.Printf("\n")
	fmt.Printf("LCOE  $%.4f/kWh  NPV $%.0f  CO2 avoided %.1f t\n",
		kpis.LCOEUSDPerKWh, kpis.NPVUSD, kpis.CO2AvoidedTons)
	if kpis.SimplePayback.Reached {
		fmt.Printf("Simple payback %.1f years\n", kpis.SimplePayback.Years)
	} else {
		fmt.Printf("Simple payback: not reached within %d years\n", scenario.Economics.LifetimeYears)
	}
}

func cmdTurbines(args []string) {
	fs := flag.NewFlagSet("turbines", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Printf("%-22s %-12s %-10s %-8s %-8s %-8s\n",
		"name", "maker", "rated_kw", "cut_in", "rated", "cut_out")
	for _, t := range generation.ListTurbines() {
		fmt.Printf("%-22s %-12s %-10.0f %-8.1f %-8.1f %-8.1f\n",
			t.Name, t.Manufacturer, t.RatedPowerKW, t.CutInMs, t.RatedMs, t.CutOutMs)
	}
}
