// Package catalog loads the static content catalog: tasks, corridors and
// supermoce. Content is authored outside the engine as JSON files; when no
// files exist a built-in starter set is used so a fresh install works.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

const (
	tasksFile     = "tasks.json"
	corridorsFile = "corridors.json"
	supermoceFile = "supermoce.json"
)

// Load reads the catalog from dir, falling back to the built-in set for
// any missing file. The returned catalog is indexed and read-only.
func Load(dir string) (*domain.Catalog, error) {
	c := Default()

	if err := loadJSON(filepath.Join(dir, tasksFile), &c.Tasks); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if err := loadJSON(filepath.Join(dir, corridorsFile), &c.Corridors); err != nil {
		return nil, fmt.Errorf("load corridors: %w", err)
	}
	if err := loadJSON(filepath.Join(dir, supermoceFile), &c.Supermoce); err != nil {
		return nil, fmt.Errorf("load supermoce: %w", err)
	}

	c.Index()
	return c, nil
}

// loadJSON decodes the file into v if it exists; a missing file keeps the
// built-in default.
func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Default returns the built-in starter catalog: five corridors, a handful
// of tasks each, and the first supermoce. Content teams replace this with
// real JSON files; IDs must stay stable once learners hold them.
func Default() *domain.Catalog {
	c := &domain.Catalog{
		Tasks: []domain.Task{
			{ID: "mat-01", Corridor: "matematyka", Question: "Ile to 7 × 8?", XP: 2},
			{ID: "mat-02", Corridor: "matematyka", Question: "Połowa z 90 to…?", XP: 2},
			{ID: "mat-03", Corridor: "matematyka", Question: "Ile boków ma sześciokąt?", XP: 2, Weight: 2},
			{ID: "pol-01", Corridor: "polski", Question: "Wskaż rzeczownik: biegać, dom, szybko", XP: 2},
			{ID: "pol-02", Corridor: "polski", Question: "Ile sylab ma słowo 'kopalnia'?", XP: 2},
			{ID: "prz-01", Corridor: "przyroda", Question: "Jak nazywa się najbliższa Ziemi gwiazda?", XP: 2},
			{ID: "prz-02", Corridor: "przyroda", Question: "Ile nóg ma pająk?", XP: 2},
			{ID: "his-01", Corridor: "historia", Question: "W którym roku Polska odzyskała niepodległość?", XP: 3},
			{ID: "ds-01", Corridor: "data_science", Question: "Co pokazuje wykres słupkowy?", XP: 3, Gems: 1},
			{ID: "ds-02", Corridor: "data_science", Question: "Jaka jest mediana zbioru 1, 3, 5?", XP: 3, Gems: 1, Weight: 2},
		},
		Corridors: []domain.Corridor{
			{ID: "matematyka", Label: "Matematyka"},
			{ID: "polski", Label: "Język polski"},
			{ID: "przyroda", Label: "Przyroda", Prerequisites: []string{"mat-01"}},
			{ID: "historia", Label: "Historia", Prerequisites: []string{"pol-01"}},
			{ID: "data_science", Label: "Data Science", Prerequisites: []string{"mat-01", "mat-02"}},
		},
		Supermoce: []domain.Supermoc{
			{
				ID: "detektyw-danych", Name: "Detektyw danych", Emoji: "🔎",
				Description: "Umiesz odczytać prosty wykres i wyciągnąć z niego wniosek.",
				Prerequisites: []string{"ds-01"},
			},
			{
				ID: "mistrz-mediany", Name: "Mistrz mediany", Emoji: "📊",
				Description: "Wiesz, czym różni się mediana od średniej.",
				Prerequisites: []string{"ds-01", "ds-02"},
			},
			{
				ID: "rachmistrz", Name: "Rachmistrz", Emoji: "🧮",
				Description: "Tabliczka mnożenia nie ma przed tobą tajemnic.",
				Prerequisites: []string{"mat-01", "mat-02", "mat-03"},
			},
		},
	}
	c.Index()
	return c
}
