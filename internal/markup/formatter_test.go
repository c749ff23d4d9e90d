package markup

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Run("encabezados", func(t *testing.T) {
		got := Format("# Título\n\n## Sub\n\n### Detalle")
		if !strings.Contains(got, `<h1 class="text-2xl font-bold mt-4 mb-2 text-gray-800">Título</h1>`) {
			t.Fatalf("missing h1: %q", got)
		}
		if !strings.Contains(got, `<h2 class="text-xl font-semibold mt-3 mb-2 text-gray-700">Sub</h2>`) {
			t.Fatalf("missing h2: %q", got)
		}
		if !strings.Contains(got, `<h3 class="text-lg font-medium mt-2 mb-1 text-gray-600">Detalle</h3>`) {
			t.Fatalf("missing h3: %q", got)
		}
	})

	t.Run("estilos inline", func(t *testing.T) {
		got := Format("**fuerte** y *suave* y __subrayado__ y `código`")
		if !strings.Contains(got, `<strong class="font-bold text-gray-900">fuerte</strong>`) {
			t.Fatalf("missing bold: %q", got)
		}
		if !strings.Contains(got, `<em class="italic text-gray-800">suave</em>`) {
			t.Fatalf("missing italic: %q", got)
		}
		if !strings.Contains(got, `<u class="underline decoration-blue-500/30">subrayado</u>`) {
			t.Fatalf("missing underline: %q", got)
		}
		if !strings.Contains(got, `<code class="bg-gray-100 px-1.5 py-0.5 rounded text-sm text-blue-600">código</code>`) {
			t.Fatalf("missing inline code: %q", got)
		}
	})

	t.Run("listas", func(t *testing.T) {
		got := Format("- uno\n- dos")
		if strings.Count(got, "<li class=") != 2 {
			t.Fatalf("expected 2 list items: %q", got)
		}

		got = Format("1. primero\n2. segundo")
		if strings.Count(got, `list-decimal`) != 2 {
			t.Fatalf("expected 2 ordered items: %q", got)
		}
	})

	t.Run("blockquote", func(t *testing.T) {
		got := Format("> cita")
		if !strings.Contains(got, `<blockquote class="border-l-4 border-blue-500/30 pl-4 my-2 italic text-gray-600">cita</blockquote>`) {
			t.Fatalf("missing blockquote: %q", got)
		}
	})

	t.Run("párrafos planos se envuelven", func(t *testing.T) {
		got := Format("primero\n\nsegundo")
		if strings.Count(got, `<p class="mb-2 leading-relaxed text-gray-700">`) != 2 {
			t.Fatalf("expected 2 paragraphs: %q", got)
		}
	})

	t.Run("bloques ya convertidos no se re-envuelven", func(t *testing.T) {
		got := Format("# Título\n\ntexto")
		if strings.Contains(got, "<p class=\"mb-2 leading-relaxed text-gray-700\"><h1") {
			t.Fatalf("heading wrapped in paragraph: %q", got)
		}
	})

	t.Run("desenvuelve JSON con campo conocido", func(t *testing.T) {
		got := Format(`{"content": "hola"}`)
		if !strings.Contains(got, "hola") || strings.Contains(got, "content") {
			t.Fatalf("expected unwrapped content: %q", got)
		}

		got = Format(`{"response": "desde response"}`)
		if !strings.Contains(got, "desde response") {
			t.Fatalf("expected unwrapped response: %q", got)
		}
	})

	t.Run("JSON sin campos conocidos queda igual", func(t *testing.T) {
		raw := `{"otro": "valor"}`
		got := Format(raw)
		if !strings.Contains(got, "otro") {
			t.Fatalf("expected raw JSON preserved: %q", got)
		}
	})

	t.Run("JSON inválido queda igual", func(t *testing.T) {
		raw := "{esto no es json"
		got := Format(raw)
		if !strings.Contains(got, "{esto no es json") {
			t.Fatalf("expected raw text preserved: %q", got)
		}
	})

	t.Run("colapsa saltos de línea excesivos", func(t *testing.T) {
		got := Format("a\n\n\n\n\nb")
		if strings.Contains(got, "\n\n\n") {
			t.Fatalf("expected collapsed newlines: %q", got)
		}
	})

	t.Run("formatear dos veces texto plano no duplica el markup", func(t *testing.T) {
		once := Format("texto sin marcadores")
		twice := Format(once)
		if twice != once {
			t.Fatalf("expected stable output:\n once: %q\ntwice: %q", once, twice)
		}
	})

	t.Run("texto vacío", func(t *testing.T) {
		if got := Format(""); got != "" {
			t.Fatalf("expected empty output, got %q", got)
		}
	})
}
