package slug

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Café de la Esquina": "cafe-de-la-esquina",
		"  Mi Tienda 24/7  ": "mi-tienda-24-7",
		"ÑOÑO!!":             "nono",
		"---":                "",
		"ya-es-slug":         "ya-es-slug",
		"Moda & Estilo 2024": "moda-estilo-2024",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("+57 (300) 111-22-33"); got != "573001112233" {
		t.Fatalf("Digits = %q", got)
	}
	if got := Digits("sin numeros"); got != "" {
		t.Fatalf("Digits = %q, want empty", got)
	}
}

func TestNorm(t *testing.T) {
	if got := Norm("  CATEGORÍA  "); got != "categoria" {
		t.Fatalf("Norm = %q", got)
	}
	if Norm("Precio Final") != Norm("PRECIO FINAL") {
		t.Fatal("Norm must be case-insensitive")
	}
}
