// Package views embeds the HTML templates rendered by the Fiber handlers.
package views

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"aparecida-web/app/dates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates static
var files embed.FS

const (
	PublicLayout = "layouts/main"
	AdminLayout  = "layouts/admin"
)

// New returns a template engine over the embedded templates.
func New(reload bool) *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("json", func(v interface{}) (template.JS, error) {
		b, err := json.Marshal(v)
		return template.JS(b), err
	})
	engine.AddFunc("formatDate", func(v interface{}) string {
		return dates.FormatOr(v, dates.NotInformed)
	})
	engine.AddFunc("dict", dict)
	engine.AddFunc("year", func() int {
		return time.Now().In(dates.Location).Year()
	})
	engine.Reload(reload)
	return engine
}

// Static serves the embedded stylesheet and images.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// dict builds a map from key/value pairs so partials can take named
// arguments.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Toast is the transient notification shown after a form action.
type Toast struct {
	Kind    string
	Message string
}

func Success(msg string) *Toast { return &Toast{Kind: "success", Message: msg} }

func Failure(msg string) *Toast { return &Toast{Kind: "error", Message: msg} }

// RenderAdmin renders a back-office page inside the admin layout.
func RenderAdmin(c *fiber.Ctx, status int, name, page, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["CurrentPage"] = page
	if _, ok := data["Toast"]; !ok {
		data["Toast"] = (*Toast)(nil)
	}
	return c.Status(status).Render(name, data, AdminLayout)
}
