package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/milk9111/firstperson/curve"
)

func main() {
	name := flag.String("curve", "curves/dash.yaml", "curve prefab to sample")
	samples := flag.Int("samples", 11, "number of evenly spaced samples")
	flag.Parse()

	c, err := curve.Load(*name)
	if err != nil {
		log.Fatal(err)
	}
	if *samples < 2 {
		*samples = 2
	}

	lo, hi := c.TimeRange()
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "x\tvalue\t\n")
	for i := 0; i < *samples; i++ {
		x := lo + (hi-lo)*float64(i)/float64(*samples-1)
		fmt.Fprintf(tw, "%.4f\t%.4f\t\n", x, c.Evaluate(x))
	}
	if err := tw.Flush(); err != nil {
		log.Fatal(err)
	}

	if s, ok := c.(*curve.Script); ok && s.Err() != nil {
		log.Printf("script %s: %v", s.Name(), s.Err())
	}
}
