package lang

import (
	"os"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// hostFuncs are functions that touch the process environment. They are not
// part of the math library and must be bound explicitly with HostBinding.
var hostFuncs = sync.OnceValue(func() []Func {
	return []Func{
		FuncOf("env", []Kind{KindString}, func(a []Value) (any, error) {
			return os.Getenv(a[0].s), nil
		}),
		VariadicOf("pathprefix", []Kind{KindString, KindString},
			func(a []Value) (any, error) {
				return pathPrefix(a[0].s, stringArgs(a[1:]), nil), nil
			}),
		VariadicOf("pathprefixdir", []Kind{KindString, KindString},
			func(a []Value) (any, error) {
				return pathPrefix(a[0].s, stringArgs(a[1:]), isDir), nil
			}),
	}
})

// HostBinding resolves the host functions:
//
//   - env(name): the value of an environment variable, "" when unset
//   - pathprefix(list, item, ...): list with the items prepended, using the
//     platform path list separator
//   - pathprefixdir(list, item, ...): like pathprefix, keeping only entries
//     that are existing directories
//
// Other names fail with ErrBinding.
func HostBinding() Binding {
	return FuncBinding(hostFuncs()...)
}

// HostFuncs returns the host function definitions.
func HostFuncs() []Func {
	return append([]Func(nil), hostFuncs()...)
}

func pathPrefix(list string, items []string, keep func(string) bool) string {
	if keep == nil {
		return mung.Make(
			mung.WithSubjectItems(list),
			mung.WithDelim(string(os.PathListSeparator)),
			mung.WithPrefixItems(items...),
		).String()
	}

	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
		mung.WithFilter(keep),
	).String()
}

func stringArgs(vs []Value) []string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = strings.TrimSpace(v.s)
	}

	return s
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
