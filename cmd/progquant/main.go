// Command progquant prints the scalar summary of one progenitor model and
// optionally writes a profile plot or a FLASH-format export.
//
// Usage:
//
//	progquant -set sukhbold_2016 -zams 9.0
//	progquant -set s16 -zams 15.2 -plot he4 -out he4.png
//	progquant -set s16 -zams 15.2 -flash s15.2.FLASH
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ccsn-dev/progs"
	"github.com/ccsn-dev/progs/plotting"
)

func main() {
	setName := flag.String("set", "", "progenitor set name or alias (e.g. sukhbold_2016, s16)")
	zams := flag.String("zams", "", "ZAMS mass identifier (e.g. 9.0)")
	plotCol := flag.String("plot", "", "profile column to plot against mass")
	plotOut := flag.String("out", "profile.png", "plot output file (.png/.svg/.pdf)")
	flashOut := flag.String("flash", "", "write FLASH-format export to this path")
	flashCols := flag.String("flash-columns", "radius,density,temperature,pressure",
		"comma-separated profile columns for the FLASH export; first is the coordinate")
	flag.Parse()

	if *setName == "" || *zams == "" {
		flag.Usage()
		os.Exit(2)
	}

	m, err := progs.LoadModel(*setName, *zams)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer m.Release()

	fmt.Printf("%s (%s, %d zones)\n", m.Label(), m.Filename, m.Profile.Rows())
	for _, name := range m.Scalars.Names() {
		v, _ := m.Scalars.Get(name)
		fmt.Printf("  %-18s %.6g\n", name, v)
	}

	if *plotCol != "" {
		if err := plotting.Profile(m, *plotCol, "mass", *plotOut, plotting.Options{}); err != nil {
			log.Fatalf("Failed to plot %s: %v", *plotCol, err)
		}
		fmt.Printf("wrote %s\n", *plotOut)
	}

	if *flashOut != "" {
		f, err := os.Create(*flashOut)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *flashOut, err)
		}
		defer f.Close()

		columns := strings.Split(*flashCols, ",")
		comment := fmt.Sprintf("Progenitor %s from set %s", *zams, m.SetName)
		if err := progs.WriteFlash(f, m.Profile, columns, comment); err != nil {
			log.Fatalf("Failed to write FLASH export: %v", err)
		}
		fmt.Printf("wrote %s\n", *flashOut)
	}
}
