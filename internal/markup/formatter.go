// Package markup convierte la salida cruda del modelo (texto markdown-like o
// JSON envuelto) en HTML estilizado para la UI. Nunca falla: cualquier paso
// que no aplique deja su entrada intacta.
package markup

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reH1 = regexp.MustCompile(`(?m)^# (.*)$`)
	reH2 = regexp.MustCompile(`(?m)^## (.*)$`)
	reH3 = regexp.MustCompile(`(?m)^### (.*)$`)

	reBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic     = regexp.MustCompile(`\*(.*?)\*`)
	reUnderline  = regexp.MustCompile(`__(.*?)__`)
	reInlineCode = regexp.MustCompile("`(.*?)`")

	reUnorderedItem = regexp.MustCompile(`(?m)^\- (.*)$`)
	reOrderedItem   = regexp.MustCompile(`(?m)^\d\. (.*)$`)

	reCodeBlock  = regexp.MustCompile("(?s)```(.*?)```")
	reBlockquote = regexp.MustCompile(`(?m)^> (.*)$`)

	reParagraphSplit = regexp.MustCompile(`\n\n+`)
	reExtraNewlines  = regexp.MustCompile(`\n{3,}`)
	reParagraphGap   = regexp.MustCompile(`(</p>)\s*(<p)`)
)

// Format aplica el pipeline completo sobre la respuesta cruda del modelo.
// Si algo explota en el camino, devuelve el texto original sin modificar.
func Format(raw string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = raw
		}
	}()

	content := unwrapEnvelope(raw)

	// Encabezados con espaciado ajustado.
	content = reH3.ReplaceAllString(content, `<h3 class="text-lg font-medium mt-2 mb-1 text-gray-600">$1</h3>`)
	content = reH2.ReplaceAllString(content, `<h2 class="text-xl font-semibold mt-3 mb-2 text-gray-700">$1</h2>`)
	content = reH1.ReplaceAllString(content, `<h1 class="text-2xl font-bold mt-4 mb-2 text-gray-800">$1</h1>`)

	// Estilos de texto.
	content = reBold.ReplaceAllString(content, `<strong class="font-bold text-gray-900">$1</strong>`)
	content = reItalic.ReplaceAllString(content, `<em class="italic text-gray-800">$1</em>`)
	content = reUnderline.ReplaceAllString(content, `<u class="underline decoration-blue-500/30">$1</u>`)
	content = reInlineCode.ReplaceAllString(content, `<code class="bg-gray-100 px-1.5 py-0.5 rounded text-sm text-blue-600">$1</code>`)

	// Listas.
	content = reUnorderedItem.ReplaceAllString(content, `<li class="ml-4 my-0.5 flex items-center before:content-["•"] before:mr-2 before:text-blue-500">$1</li>`)
	content = reOrderedItem.ReplaceAllString(content, `<li class="ml-4 my-0.5 list-decimal">$1</li>`)

	// Bloques de código con fences.
	content = reCodeBlock.ReplaceAllStringFunc(content, func(match string) string {
		code := strings.TrimSpace(strings.Trim(match, "`"))
		return `<pre class="bg-gray-100 p-3 rounded-lg my-2 overflow-x-auto"><code class="text-sm text-gray-800">` + code + `</code></pre>`
	})

	// Citas.
	content = reBlockquote.ReplaceAllString(content, `<blockquote class="border-l-4 border-blue-500/30 pl-4 my-2 italic text-gray-600">$1</blockquote>`)

	// Párrafos: los bloques ya convertidos a HTML no se re-envuelven.
	paragraphs := reParagraphSplit.Split(content, -1)
	wrapped := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if strings.HasPrefix(para, "<") {
			wrapped = append(wrapped, para)
			continue
		}
		wrapped = append(wrapped, `<p class="mb-2 leading-relaxed text-gray-700">`+para+`</p>`)
	}
	content = strings.Join(wrapped, "\n")

	// Limpieza final de saltos de línea excesivos.
	content = reExtraNewlines.ReplaceAllString(content, "\n\n")
	content = reParagraphGap.ReplaceAllString(content, "$1$2")

	return content
}

// envelope cubre los campos que algunos proveedores devuelven cuando
// responden JSON en vez de texto plano.
type envelope struct {
	Content  string `json:"content"`
	Text     string `json:"text"`
	Response string `json:"response"`
}

// unwrapEnvelope extrae el contenido si el texto entero parsea como JSON con
// un campo conocido; en cualquier otro caso devuelve el texto tal cual.
func unwrapEnvelope(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return raw
	}

	var env envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return raw
	}

	switch {
	case env.Content != "":
		return env.Content
	case env.Text != "":
		return env.Text
	case env.Response != "":
		return env.Response
	default:
		return raw
	}
}
