// Package main provides the loom CLI: an agent that learns writing patterns
// from sample posts and drafts new posts in the learned voice, entirely in
// the terminal.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/loomhq/loom/pkg/agent"
	"github.com/loomhq/loom/pkg/executor/chat"
	"github.com/loomhq/loom/pkg/executor/cli"
	"github.com/loomhq/loom/pkg/llm/openai"
	"github.com/loomhq/loom/pkg/patterns"
	"github.com/loomhq/loom/pkg/tools/codeimage"
	"github.com/loomhq/loom/pkg/tools/content"
)

const (
	version      = "0.1.0"
	defaultModel = "gpt-4o"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit()
	case "learn":
		err = runLearn(ctx, os.Args[2:])
	case "create":
		err = runCreate(ctx, os.Args[2:])
	case "patterns":
		err = runPatterns()
	case "clear":
		err = runClear()
	case "chat":
		err = runChat(ctx, os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("loom v%s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "loom - learn writing patterns, draft posts in the learned voice\n\n")
	fmt.Fprintf(os.Stderr, "Usage: loom <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  init                 Create project folders and an example post\n")
	fmt.Fprintf(os.Stderr, "  learn [-source DIR]  Analyze sample posts and learn their patterns\n")
	fmt.Fprintf(os.Stderr, "  create <topic>       Draft a post about a topic using learned patterns\n")
	fmt.Fprintf(os.Stderr, "  patterns             Show what has been learned\n")
	fmt.Fprintf(os.Stderr, "  clear                Forget all learned patterns\n")
	fmt.Fprintf(os.Stderr, "  chat                 Interactive assistant\n")
	fmt.Fprintf(os.Stderr, "  version              Show version\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
	fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY     API key (required for learn/create/chat)\n")
	fmt.Fprintf(os.Stderr, "  OPENAI_BASE_URL    API base URL (for compatible APIs)\n")
}

// buildAgent wires up a provider, the pattern store, and the full tool set
// for the given mode instructions.
func buildAgent(model, instructions string, store patterns.Store, renderer *codeimage.Renderer) (agent.Agent, error) {
	provider, err := openai.NewProvider("", openai.WithModel(model))
	if err != nil {
		return nil, err
	}

	ag := agent.NewDefaultAgent(provider,
		agent.WithCustomInstructions(instructions),
	)

	registrations := []error{
		ag.RegisterTool(content.NewAnalyzePostsTool("")),
		ag.RegisterTool(content.NewSavePatternsTool(store)),
		ag.RegisterTool(content.NewLoadPatternsTool(store)),
		ag.RegisterTool(content.NewWritePostTool("")),
		ag.RegisterTool(content.NewFetchArticleTool()),
		ag.RegisterTool(codeimage.NewFormatSnippetTool("")),
		ag.RegisterTool(codeimage.NewRenderImageTool(renderer, "")),
		ag.RegisterTool(codeimage.NewListThemesTool()),
	}
	for _, err := range registrations {
		if err != nil {
			return nil, fmt.Errorf("failed to register tool: %w", err)
		}
	}

	return ag, nil
}

func runInit() error {
	for _, folder := range []string{content.DefaultSourceDir, content.DefaultOutputDir, "patterns"} {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", folder, err)
		}
		fmt.Printf("Created: %s/\n", folder)
	}

	examplePath := content.DefaultSourceDir + "/example.md"
	if _, err := os.Stat(examplePath); os.IsNotExist(err) {
		if err := os.WriteFile(examplePath, []byte(examplePost), 0o644); err != nil {
			return fmt.Errorf("failed to write example post: %w", err)
		}
		fmt.Printf("Created: %s\n", examplePath)
	}

	fmt.Println("\nProject initialized.")
	fmt.Println("\nNext steps:")
	fmt.Printf("1. Add posts to the %s/ folder\n", content.DefaultSourceDir)
	fmt.Println("2. Run 'loom learn' to analyze them")
	fmt.Println("3. Run 'loom create \"your topic\"' to draft posts")
	return nil
}

func runLearn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("learn", flag.ExitOnError)
	source := fs.String("source", content.DefaultSourceDir, "directory containing posts to analyze")
	model := fs.String("model", defaultModel, "LLM model to use")
	if err := fs.Parse(args); err != nil {
		return err
	}

	info, err := os.Stat(*source)
	if err != nil {
		return fmt.Errorf("directory not found: %s", *source)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", *source)
	}

	store := patterns.NewFileStore("")
	renderer := codeimage.NewRenderer()
	defer renderer.Shutdown()

	ag, err := buildAgent(*model, LearnInstructions, store, renderer)
	if err != nil {
		return err
	}

	fmt.Printf("Learning from posts in %s/\n\n", *source)

	prompt := fmt.Sprintf(`Analyze all posts in the %q directory.

1. Use analyze_posts to read the posts
2. Extract patterns (hooks, structure, tone, CTAs, topics)
3. Use save_patterns to store what you learned, with the source filenames
4. Summarize the key patterns you found`, *source)

	executor := cli.NewExecutor(ag)
	return executor.RunOnce(ctx, prompt)
}

func runCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	code := fs.Bool("code", false, "include a code snippet")
	copyOut := fs.Bool("copy", false, "copy the drafted post to the clipboard")
	variations := fs.Int("variations", 1, "number of variations to draft")
	model := fs.String("model", defaultModel, "LLM model to use")
	if err := fs.Parse(args); err != nil {
		return err
	}

	topic := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if topic == "" {
		return fmt.Errorf("usage: loom create [options] <topic>")
	}

	store := patterns.NewFileStore("")
	if collection, err := store.Load(); err == nil && collection.IsEmpty() {
		fmt.Println("Warning: No patterns learned yet.")
		fmt.Println("Run 'loom learn' first to analyze posts.")
		fmt.Println()
	}

	renderer := codeimage.NewRenderer()
	defer renderer.Shutdown()

	ag, err := buildAgent(*model, CreateInstructions, store, renderer)
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Write a post about: %s", topic)
	if *variations > 1 {
		prompt += fmt.Sprintf("\n\nGenerate %d different variations.", *variations)
	}
	if *code {
		prompt += "\n\nInclude a relevant code snippet, formatted for sharing."
	}
	prompt += "\n\nSave the post(s) using write_post."
	if *copyOut {
		prompt += " Set copy_to_clipboard to true for the final draft."
	}

	fmt.Printf("Drafting a post about: %s\n\n", topic)

	executor := cli.NewExecutor(ag)
	return executor.RunOnce(ctx, prompt)
}

func runPatterns() error {
	store := patterns.NewFileStore("")

	summary, ok, err := store.Summary()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No patterns learned yet.")
		fmt.Println("Run 'loom learn' to analyze posts.")
		return nil
	}

	fmt.Println(summary)
	fmt.Println()

	collection, err := store.Load()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(collection.Patterns, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println("Full patterns:")
	fmt.Println(string(data))
	return nil
}

func runClear() error {
	store := patterns.NewFileStore("")
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Learned patterns cleared.")
	return nil
}

func runChat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	model := fs.String("model", defaultModel, "LLM model to use")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := patterns.NewFileStore("")
	renderer := codeimage.NewRenderer()
	defer renderer.Shutdown()

	ag, err := buildAgent(*model, ChatInstructions, store, renderer)
	if err != nil {
		return err
	}

	executor := chat.NewExecutor(ag)
	return executor.Run(ctx)
}

const examplePost = `# Example Post

Here's a pattern I see with successful posts:

They start with a hook that grabs attention.

Then they deliver value in short, punchy paragraphs.

They use:
- Bullet points for lists
- Short sentences
- White space

And they end with a question to drive engagement.

What patterns have you noticed in posts that take off?

---
(Replace this with real posts from writers you admire)
`
