package markdown_utils

import "testing"

func TestExtractFencedBlock(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		lang     string
		expected string
	}{
		{
			name:     "tagged fence",
			input:    "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps!",
			lang:     "json",
			expected: `{"a": 1}`,
		},
		{
			name:     "untagged fence fallback",
			input:    "```\n{\"a\": 1}\n```",
			lang:     "json",
			expected: `{"a": 1}`,
		},
		{
			name:     "no fence returns trimmed input",
			input:    "  {\"a\": 1}  ",
			lang:     "json",
			expected: `{"a": 1}`,
		},
		{
			name:     "unterminated fence",
			input:    "```python\nprint('hi')",
			lang:     "python",
			expected: "print('hi')",
		},
		{
			name:     "python block among prose",
			input:    "Sure!\n```python\nclass GenScene(Scene):\n    pass\n```",
			lang:     "python",
			expected: "class GenScene(Scene):\n    pass",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractFencedBlock(tc.input, tc.lang)
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
