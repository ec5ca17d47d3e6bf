package main

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/minerdata"
	"github.com/bodgit/minerdata/atlas"
	"github.com/bodgit/minerdata/catalog"
	"github.com/urfave/cli/v2"
)

const defaultDB = "minerdata.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		w := c.App.ErrWriter
		if w == nil {
			w = os.Stderr
		}
		logger.SetOutput(w)
	}
	return logger
}

func load(c *cli.Context) (*minerdata.GameData, error) {
	return minerdata.New(newLogger(c)).LoadFile(c.Args().First())
}

func list(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	gd, err := load(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for i, cav := range gd.Caverns {
		name := cav.TrimmedName()
		if c.Bool("raw") {
			name = cav.Name
		}
		fmt.Fprintf(c.App.Writer, "%2d %q\n", i, name)
	}

	return nil
}

func export(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	gd, err := load(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	a, err := gd.Atlas()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := atlas.Encode(w, a, &atlas.Options{
		Scale:  c.Int("scale"),
		Colors: c.Int("colors"),
	}); err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := w.Flush(); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func importCatalog(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	gd, err := load(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	db, err := catalog.Open(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	if err := db.Import(gd); err != nil {
		return cli.NewExitError(err, 1)
	}

	newLogger(c).Printf("Imported %d caverns with checksum %016X\n", len(gd.Caverns), gd.Checksum)

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "minerdata"
	app.Usage = "Manic Miner cavern data extraction utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "list",
			Usage:       "List the caverns",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "raw",
					Usage: "print names without trimming padding",
				},
			},
			Action: list,
		},
		{
			Name:        "export",
			Usage:       "Export the cavern tiles as a PNG image",
			Description: "",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "integer scale factor",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce to a paletted image with this many colors",
				},
			},
			Action: export,
		},
		{
			Name:        "import",
			Usage:       "Import the caverns into the catalog",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "db",
					EnvVars: []string{"MINERDATA_DB"},
					Value:   filepath.Join(cwd, defaultDB),
					Usage:   "path to database",
				},
			},
			Action: importCatalog,
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
