package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"

	facultydir "github.com/poiesic/facultydir"
	"github.com/poiesic/facultydir/core"
)

var departments = map[string][]string{
	"computer science": {
		"machine learning", "natural language processing", "computer vision",
		"distributed systems", "programming languages", "human computer interaction",
		"theory of computation", "computer graphics", "databases", "security",
	},
	"statistics": {
		"bayesian inference", "high dimensional statistics", "causal inference",
		"time series analysis", "statistical learning", "biostatistics",
	},
	"electrical engineering": {
		"signal processing", "embedded systems", "power electronics",
		"photonics", "wireless communications", "control systems",
	},
	"biology": {
		"genomics", "molecular biology", "ecology", "neurobiology",
		"developmental biology", "computational biology",
	},
	"chemistry": {
		"organic synthesis", "physical chemistry", "electrochemistry",
		"materials chemistry", "chemical biology",
	},
	"physics": {
		"condensed matter", "quantum information", "astrophysics",
		"particle physics", "biophysics",
	},
	"economics": {
		"econometrics", "behavioral economics", "labor economics",
		"macroeconomics", "market design",
	},
	"psychology": {
		"cognitive psychology", "social psychology", "developmental psychology",
		"clinical psychology", "perception",
	},
}

var firstNames = []string{
	"Ada", "Grace", "Alan", "John", "Mary", "Tian", "Wei", "Priya", "Amir",
	"Zoe", "Elena", "Marcus", "Sofia", "Diego", "Yuki", "Omar", "Ingrid",
	"Kwame", "Leila", "Viktor", "Nadia", "Carlos", "Mei", "Raj", "Fatima",
}

var lastNames = []string{
	"Smith", "Chen", "Lee", "Garcia", "Johnson", "Li", "Patel", "Kim",
	"Nguyen", "Park", "Khan", "Ivanov", "Silva", "Tanaka", "Okafor",
	"Hansen", "Rossi", "Novak", "Haddad", "Larsson", "Mbeki", "Costa",
}

var titles = []string{
	"Professor", "Associate Professor", "Assistant Professor",
	"Distinguished Professor", "Professor Emeritus", "Lecturer",
}

var (
	dbPath         = flag.String("db", "./directory_db", "path to database directory")
	numDepartments = flag.Int("departments", len(departments), "number of departments to seed")
	perDepartment  = flag.Int("professors", 15, "professors per department")
	seed           = flag.Int64("seed", 1, "random seed")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func buildRoster(rng *rand.Rand, areas []string, count int) []core.Entity {
	entities := make([]core.Entity, 0, count)
	used := make(map[string]bool)

	for len(entities) < count {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		if used[name] {
			continue
		}
		used[name] = true

		area := areas[rng.Intn(len(areas))]
		entity := core.Entity{
			Name:               name,
			Title:              titles[rng.Intn(len(titles))],
			Email:              emailFor(name),
			ResearchArea:       area,
			NumLabMembers:      rng.Intn(25),
			NumPublishedPapers: rng.Intn(200),
			IsRecruiting:       rng.Intn(3) == 0,
		}
		// Roughly half the faculty run a named lab.
		if rng.Intn(2) == 0 {
			lastName := name[lastIndexOfSpace(name)+1:]
			entity.Lab = lastName + " Lab"
			entity.LabWebsite = fmt.Sprintf("https://labs.example.edu/%s", lastName)
			entity.NumUndergradResearchers = rng.Intn(8)
		}
		entities = append(entities, entity)
	}
	return entities
}

func emailFor(name string) string {
	local := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == ' ' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		local = append(local, c)
	}
	return string(local) + "@example.edu"
}

func lastIndexOfSpace(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' {
			return i
		}
	}
	return -1
}

func main() {
	db, err := facultydir.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	importer, err := db.NewImporter()
	if err != nil {
		panic(err)
	}
	defer importer.Release()

	names := make([]string, 0, len(departments))
	for department := range departments {
		names = append(names, department)
	}
	sort.Strings(names)
	if *numDepartments > 0 && *numDepartments < len(names) {
		names = names[:*numDepartments]
	}

	rng := rand.New(rand.NewSource(*seed))
	catalog := make(core.Catalog, len(names))
	for _, department := range names {
		catalog[department] = buildRoster(rng, departments[department], *perDepartment)
	}

	report, err := importer.ImportCatalog(context.Background(), catalog)
	if err != nil {
		panic(err)
	}

	slog.Info("seeded directory",
		"departments", report.Departments,
		"entities", report.Entities)
}
