package menu

import (
	"errors"
	"time"
)

var (
	ErrDayNotFound = errors.New("day menu not found")
)

// SentinelTitle marks the placeholder option shown on days without a
// published menu. An option carrying this title is never orderable.
const SentinelTitle = "Cardápio disponível em breve"

// Option is a single orderable dish on a day's menu. Options are
// immutable and loaded once at process start.
type Option struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// IsPlaceholder reports whether the option is the "menu coming soon"
// sentinel rather than a real dish.
func (o Option) IsPlaceholder() bool {
	return o.Title == SentinelTitle
}

// DayMenu is the ordered list of options offered on one weekday.
type DayMenu struct {
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// DayKeys enumerates the weekday identifiers, Sunday first to match
// time.Weekday numbering.
var DayKeys = []string{"domingo", "segunda", "terca", "quarta", "quinta", "sexta", "sabado"}

// CurrentDay maps a wall-clock instant to its day key. It must be
// re-evaluated per request; "today" is never cached.
func CurrentDay(now time.Time) string {
	return DayKeys[int(now.Weekday())]
}

// IsOrderable decides whether an option browsed under dayKey may be
// added to a cart when "today" resolves to todayKey. Customers may
// browse any day but only order from the current day's menu.
func IsOrderable(dayKey, todayKey string, option Option) bool {
	if option.IsPlaceholder() {
		return false
	}
	if dayKey != todayKey {
		return false
	}
	return true
}

// Catalog holds the weekly menu, keyed by day. Static data, built once.
type Catalog struct {
	days map[string]DayMenu
}

// NewCatalog creates the catalog with the restaurant's weekly menu.
// Every key in DayKeys resolves to a DayMenu; days without a published
// menu carry the sentinel option.
func NewCatalog() *Catalog {
	lunchOption1 := "Arroz, feijão, pernil assado, creme de milho, farofa, salada de alface, tomate, pepino."
	lunchOption2 := "Arroz, feijão, peito de frango refogado, brócolis cozido, couve-flor cozida, salada de alface, tomate, cenoura ralada."

	weekday := func(day string) []Option {
		return []Option{
			{
				ID:          day + "_opcao_1",
				Title:       "Opção 01",
				Description: lunchOption1,
				Image:       "/assets/" + day + "opcao1.jpg",
			},
			{
				ID:          day + "_opcao_2",
				Title:       "Opção 02",
				Description: lunchOption2,
				Image:       "/assets/" + day + "opcao2.jpg",
			},
		}
	}

	days := map[string]DayMenu{
		"segunda": {Name: "Segunda-feira", Options: weekday("segunda")},
		"terca":   {Name: "Terça-feira", Options: weekday("terca")},
		"quarta":  {Name: "Quarta-feira", Options: weekday("quarta")},
		"quinta":  {Name: "Quinta-feira", Options: weekday("quinta")},
		"sexta":   {Name: "Sexta-feira", Options: weekday("sexta")},
		"sabado":  {Name: "Sábado", Options: weekday("sabado")},
		// Closed on Sundays
		"domingo": {Name: "Domingo", Options: []Option{
			{
				ID:          "domingo_opcao_1",
				Title:       SentinelTitle,
				Description: "Em breve novidades para o domingo.",
			},
		}},
	}

	return &Catalog{days: days}
}

// Day returns the menu for a day key.
func (c *Catalog) Day(key string) (DayMenu, error) {
	day, ok := c.days[key]
	if !ok {
		return DayMenu{}, ErrDayNotFound
	}
	return day, nil
}

// Option looks up an option by id within a day's menu.
func (c *Catalog) Option(dayKey, optionID string) (Option, bool) {
	day, ok := c.days[dayKey]
	if !ok {
		return Option{}, false
	}
	for _, opt := range day.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// Week returns the full catalog keyed by day.
func (c *Catalog) Week() map[string]DayMenu {
	week := make(map[string]DayMenu, len(c.days))
	for k, v := range c.days {
		week[k] = v
	}
	return week
}
