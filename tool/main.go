// Command astgen generates closed sum types from a small declaration
// language:
//
//	type Expression =
//	  | Integer of int64
//	  | Null of "struct{}"
//	  ;
//
// Every variant gets an is_<Sum>() marker method. A variant whose kind is
// itself a sum type embeds it.
//
// Usage: astgen <decls> <output.go> <package>
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type TCase struct {
	Name string `@Ident "of"`
	Kind string `(@Ident | @String | @RawString)`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

func GenerateDecls(source, pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by astgen from %s. DO NOT EDIT.", source))

	for _, decl := range t.Declarations {
		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
			continue
		}
		if decl.Many == nil {
			continue
		}

		marker := "is_" + decl.Name
		f.Type().Id(decl.Name).Interface(
			Id(marker).Params(),
		)

		for _, it := range *decl.Many {
			if t.IsSumType(it.Kind) {
				f.Type().Id(it.Name).Struct(Id(it.Kind))
			} else {
				f.Type().Id(it.Name).Id(it.Kind)
			}

			f.Func().Params(Id("v").Id(it.Name)).Id(marker).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "astgen: %s\n", err)
	os.Exit(1)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: astgen <decls> <output.go> <package>")
		os.Exit(2)
	}

	parser := participle.MustBuild(&TypeDecls{}, participle.Unquote("String", "RawString"))

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		fail(err)
	}

	decls := TypeDecls{}
	err = parser.ParseBytes(inData, &decls)
	if err != nil {
		fail(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(filepath.Base(in), pkgname, &decls)), 0o644)
	if err != nil {
		fail(err)
	}
}
