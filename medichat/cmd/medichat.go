// Command-line chat client: the conversation store, selection pointer, and
// submission flow run locally; answers come from the retrieval service.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"medichat/medichat/config"
	"medichat/medichat/conversation"
	"medichat/medichat/services/chat"
	"medichat/medichat/services/ingest"
	"medichat/medichat/services/rag"
	"medichat/medichat/sources/store"
	"medichat/medichat/utils/color"
	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	args := os.Args[1:]
	if len(args) >= 1 && args[0] == "ingest" {
		if len(args) < 2 {
			fmt.Println("usage: medichat ingest <folder>")
			os.Exit(1)
		}
		n, err := ingest.Run(args[1], cfg.HospitalDataPath)
		if err != nil {
			fmt.Println(color.ColorError("ingest failed: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(color.ColorInfo(fmt.Sprintf("Wrote %d chunks to %s", n, cfg.HospitalDataPath)))
		return
	}
	if len(args) >= 1 && args[0] == "ingest-bucket" {
		src, err := ingest.NewMinIOSource(cfg)
		if err != nil {
			fmt.Println(color.ColorError("bucket connect failed: " + err.Error()))
			os.Exit(1)
		}
		n, err := ingest.RunFromBucket(context.Background(), src, cfg.HospitalDataPath)
		if err != nil {
			fmt.Println(color.ColorError("ingest failed: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(color.ColorInfo(fmt.Sprintf("Wrote %d chunks to %s", n, cfg.HospitalDataPath)))
		return
	}
	if len(args) >= 1 && args[0] != "chat" {
		fmt.Println("medichat usage:")
		fmt.Println("  medichat chat              # Interactive chat against the retrieval service")
		fmt.Println("  medichat ingest <folder>   # Rebuild the hospital data file from documents")
		fmt.Println("  medichat ingest-bucket     # Same, pulling documents from the object store")
		os.Exit(1)
	}

	// conversations persist across runs in a local badger store
	var repo *conversation.Repository
	db, err := store.Open(cfg.BadgerPath)
	if err != nil {
		logging.ErrorLogger.Error("store open error, running in memory", zap.Error(err))
		repo = conversation.NewRepository(store.NewMemoryStore())
	} else {
		defer db.Close()
		repo = conversation.NewRepository(store.NewBadgerStore(db))
	}

	flow := chat.NewFlow(repo, rag.NewClient(cfg.RAGBaseURL))

	fmt.Printf("Connected to %s\n", cfg.RAGBaseURL)
	fmt.Printf("Conversation: %s\n", repo.Current().Title)
	fmt.Println("Commands: :new :list :select <n> :rename <title> :delete :analyze :exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("medichat> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if runCommand(repo, line) {
				return
			}
			continue
		}

		msg := flow.Submit(context.Background(), line)
		if flow.Failed() {
			fmt.Println(color.ColorWarning("The retrieval service could not be reached."))
		}
		if msg == nil {
			continue
		}
		fmt.Println(color.ColorAssistant(msg.Content))
		if msg.Reasoning != "" {
			fmt.Println(color.ColorReasoning(msg.Reasoning))
		}
		fmt.Println()
	}
}

// runCommand handles one ":" command; returns true to exit.
func runCommand(repo *conversation.Repository, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":exit", ":quit":
		fmt.Println("Goodbye!")
		return true
	case ":new":
		c := repo.StartNew()
		fmt.Println(color.ColorInfo("Started " + c.Title))
	case ":list":
		for i, c := range repo.List() {
			marker := "  "
			if c.ID == repo.CurrentID() {
				marker = "* "
			}
			fmt.Printf("%s%d. %s (%d messages)\n", marker, i+1, c.Title, len(c.Messages))
		}
	case ":select":
		convs := repo.List()
		var idx int
		if _, err := fmt.Sscanf(arg, "%d", &idx); err != nil || idx < 1 || idx > len(convs) {
			fmt.Println(color.ColorWarning("usage: :select <number from :list>"))
			break
		}
		if err := repo.Select(convs[idx-1].ID); err != nil {
			fmt.Println(color.ColorError(err.Error()))
			break
		}
		fmt.Println(color.ColorInfo("Switched to " + convs[idx-1].Title))
	case ":rename":
		repo.Rename(repo.CurrentID(), arg)
		fmt.Println(color.ColorInfo("Renamed to " + repo.Current().Title))
	case ":delete":
		if !repo.CanDelete() {
			fmt.Println(color.ColorWarning("Cannot delete the only conversation."))
			break
		}
		repo.Delete(repo.CurrentID())
		fmt.Println(color.ColorInfo("Deleted. Now on " + repo.Current().Title))
	case ":analyze":
		a := conversation.Analyze(repo.Current())
		out, _ := json.MarshalIndent(a, "", "  ")
		fmt.Println(string(out))
	default:
		fmt.Println(color.ColorWarning("Unknown command " + cmd))
	}
	return false
}
