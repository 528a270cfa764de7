package gemini

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/awray/docmap"
)

const model = "gemini-2.5-flash"

// Ensure Asker implements docmap.Asker at compile time.
var _ docmap.Asker = (*Asker)(nil)

// Asker implements docmap.Asker using Google Gemini. It answers a question
// by iterating over the documentation files one at a time, letting the
// model judge each file's relevance and accumulate findings, then
// consolidating the findings into a final answer. File-level iteration
// keeps the call count proportional to files, not sections, while giving
// the model full-file context per call.
type Asker struct {
	client  *genai.Client
	root    string
	limiter *rate.Limiter

	// MaxFiles caps the number of files consulted. Zero means all files.
	MaxFiles int
}

// NewAsker creates a new Asker over the documentation root. Model calls
// are paced at one per second.
func NewAsker(client *genai.Client, root string) *Asker {
	return &Asker{
		client:  client,
		root:    root,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Ask answers a natural language question about the documentation.
func (a *Asker) Ask(ctx context.Context, question string) (*docmap.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, docmap.Errorf(docmap.EINVALID, "question required")
	}

	files, err := docFiles(a.root)
	if err != nil {
		return nil, err
	}
	if a.MaxFiles > 0 && len(files) > a.MaxFiles {
		files = files[:a.MaxFiles]
	}

	var findings strings.Builder
	var sources []string
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(a.root, file))
		if err != nil || strings.TrimSpace(string(content)) == "" {
			continue
		}

		prompt := IterationPrompt(question, findings.String(), file, string(content))
		text, err := a.generate(ctx, iterationSystem, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A failed file is skipped, not fatal; the consolidation works
			// with whatever findings accumulated.
			continue
		}

		fmt.Fprintf(&findings, "\n\nFrom %q:\n%s", file, text)
		sources = append(sources, file)
	}

	if findings.Len() == 0 {
		return nil, docmap.Errorf(docmap.ENOTFOUND, "no documentation content found under %s", a.root)
	}

	prompt := ConsolidationPrompt(question, findings.String(), sources)
	text, err := a.generate(ctx, consolidationSystem, prompt)
	if err != nil {
		return nil, err
	}

	return &docmap.Answer{Text: text, Sources: sources}, nil
}

func (a *Asker) generate(ctx context.Context, system, prompt string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}

	temp := float32(0.4)
	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: system}},
			},
			Temperature: &temp,
		},
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docmap.Errorf(docmap.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

const iterationSystem = "You are analyzing documentation files to answer a question. Extract relevant key points concisely."

const consolidationSystem = "You are a documentation assistant. Provide a clear, consolidated answer based on the findings. Answer in the same language as the question."

// IterationPrompt builds the per-file prompt: the question, the findings
// accumulated from earlier files, and the current file's full content.
func IterationPrompt(question, findings, file, content string) string {
	if findings == "" {
		findings = "(none yet)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	fmt.Fprintf(&sb, "Previous findings:\n%s\n\n", findings)
	fmt.Fprintf(&sb, "Current file: %s\n---\n%s\n---\n\n", file, content)
	sb.WriteString("Task:\n")
	sb.WriteString("1. Does this file contain information relevant to the question?\n")
	sb.WriteString("2. If yes, extract key points.\n")
	sb.WriteString("3. Note what information is still missing to fully answer the question.\n\n")
	sb.WriteString("Respond concisely:\n")
	sb.WriteString("KEY_POINTS: [bullet list of relevant findings, or \"none\"]\n")
	sb.WriteString("MISSING: [what's still needed, or \"nothing\"]")
	return sb.String()
}

// ConsolidationPrompt builds the final prompt from the accumulated
// findings and the list of consulted files.
func ConsolidationPrompt(question, findings string, sources []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	fmt.Fprintf(&sb, "All findings from documentation:\n%s\n\n", findings)
	sb.WriteString("Files consulted:\n")
	for _, source := range sources {
		fmt.Fprintf(&sb, "- %s\n", source)
	}
	sb.WriteString("\nTask: Provide a final, consolidated answer that:\n")
	sb.WriteString("1. Directly answers the question\n")
	sb.WriteString("2. Synthesizes information from all files\n")
	sb.WriteString("3. Is clear and well-structured\n\n")
	sb.WriteString("Provide only the answer, no meta-commentary.")
	return sb.String()
}

// docFiles lists the documentation files under root as slash-separated
// relative paths, sorted for deterministic iteration order.
func docFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := docmap.FormatForPath(path); !ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, docmap.Errorf(docmap.ENOTFOUND, "documentation root %s: %v", root, err)
	}
	sort.Strings(files)
	return files, nil
}
