// Package templates holds the HTML components of the report viewer. The
// components are written in .templ files; run `templ generate` after
// editing them.
package templates

import "github.com/JonMunkholm/reportviewer/internal/view"

// SampleCode is prefilled in the editor on first load.
const SampleCode = `def main():
    edad = 22
    escuela = "upchiapas"
    if edad > 18:
        print("Mayor de edad")
    if escuela.lower() == "upchiapas":
        print("Bienvenido a UPChiapas")

if __name__ == "__main__":
    main()`

// Analysis is what the result panel shows for one run.
type Analysis struct {
	ID     string
	Code   string
	Report string
	Page   view.Page
}

// htmxConfig lets error responses swap into the results panel so the
// server's alert fragment is shown.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[2345]..","swap":true}]}`
