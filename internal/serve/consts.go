package serve

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/osuushi/genart"
	"github.com/pkg/errors"
)

// A user const as announced by the art program, or as set from the page.
type Const struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

var (
	constLine = regexp.MustCompile(`^genart: const ([A-Za-z_][A-Za-z0-9_]*): (\w+) = (.*);$`)
	constName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ParseConstLine recognizes the line an art program prints for each user
// const it reads.
func ParseConstLine(line string) (Const, bool) {
	m := constLine.FindStringSubmatch(line)
	if m == nil {
		return Const{}, false
	}
	return Const{Name: m[1], Type: m[2], Value: m[3]}, true
}

// constStore holds the values set from the page, which are passed to every
// later run, and the types the art program has declared.
type constStore struct {
	mu       sync.Mutex
	declared map[string]string
	values   map[string]string
}

func newConstStore() *constStore {
	return &constStore{
		declared: make(map[string]string),
		values:   make(map[string]string),
	}
}

func (s *constStore) observe(line string) {
	c, ok := ParseConstLine(line)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.declared[c.Name] = c.Type
}

// set validates every const before applying any of them.
func (s *constStore) set(consts []Const) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed := make(map[string]string, len(consts))
	for _, c := range consts {
		if !constName.MatchString(c.Name) {
			return errors.Errorf("invalid user const name %q", c.Name)
		}
		if declared, ok := s.declared[c.Name]; ok && declared != c.Type {
			return errors.Errorf("user const %s is declared as %s, not %s", c.Name, declared, c.Type)
		}
		value, err := genart.ParseConstValue(c.Type, c.Value)
		if err != nil {
			return errors.Wrapf(err, "user const %s", c.Name)
		}
		parsed[c.Name] = value
	}
	maps.Copy(s.values, parsed)
	return nil
}

// env is the environment passing the current values to an art program.
func (s *constStore) env() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var env []string
	for _, name := range slices.Sorted(maps.Keys(s.values)) {
		env = append(env, genart.EnvUserConstPrefix+name+"="+s.values[name])
	}
	return env
}

// script renders the current values as user_consts.sh.
func (s *constStore) script() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	b.WriteString(`# genart user consts
#
# To re-establish this user const environment, run:
#
#    $ source user_consts.sh

`)
	for _, name := range slices.Sorted(maps.Keys(s.values)) {
		fmt.Fprintf(&b, "export %s%s=%s\n", genart.EnvUserConstPrefix, name, shellQuote(s.values[name]))
	}
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
