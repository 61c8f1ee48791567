package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Todo mirrors the list response of the server
type Todo struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

var client = &http.Client{
	Timeout: 10 * time.Second,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// createTodo sends a form-encoded POST /create
func createTodo(baseURL, description string) error {
	resp, err := client.PostForm(baseURL+"/create", url.Values{"description": {description}})
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

func listTodos(baseURL string) ([]Todo, error) {
	resp, err := client.Get(baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var todos []Todo
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return todos, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run test_scripts/create_todos_load.go <number_of_todos> [server_url] [workers]")
		fmt.Println("Example: go run test_scripts/create_todos_load.go 1000")
		fmt.Println("Example: go run test_scripts/create_todos_load.go 1000 http://localhost:8000 32")
		os.Exit(1)
	}

	numTodos, err := strconv.Atoi(os.Args[1])
	if err != nil || numTodos <= 0 {
		fmt.Printf("Error: Invalid number of todos '%s'. Please provide a positive integer.\n", os.Args[1])
		os.Exit(1)
	}

	serverURL := "http://localhost:8000"
	if len(os.Args) >= 3 {
		serverURL = strings.TrimRight(os.Args[2], "/")
	}

	workers := 16
	if len(os.Args) >= 4 {
		if workers, err = strconv.Atoi(os.Args[3]); err != nil || workers <= 0 {
			fmt.Printf("Error: Invalid worker count '%s'.\n", os.Args[3])
			os.Exit(1)
		}
	}

	before, err := listTodos(serverURL)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting load test: creating %d todos on %s with %d workers\n", numTodos, serverURL, workers)

	startTime := time.Now()
	var successCount, errorCount int64
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := createTodo(serverURL, fmt.Sprintf("load-%d-%d", startTime.Unix(), i)); err != nil {
					atomic.AddInt64(&errorCount, 1)
					fmt.Printf("Error creating todo %d: %v\n", i, err)
					continue
				}
				atomic.AddInt64(&successCount, 1)
			}
		}()
	}
	for i := 0; i < numTodos; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	totalTime := time.Since(startTime)

	after, err := listTodos(serverURL)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	seen := make(map[int64]bool, len(after))
	for _, todo := range after {
		if seen[todo.ID] {
			fmt.Printf("Error: duplicate id %d in list\n", todo.ID)
			os.Exit(1)
		}
		seen[todo.ID] = true
	}
	created := len(after) - len(before)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("LOAD TEST COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total todos attempted: %d\n", numTodos)
	fmt.Printf("Successful creates:    %d\n", successCount)
	fmt.Printf("Failed creates:        %d\n", errorCount)
	fmt.Printf("New rows listed:       %d\n", created)
	fmt.Printf("Total time:            %v\n", totalTime)
	fmt.Printf("Average rate:          %.2f todos/sec\n", float64(numTodos)/totalTime.Seconds())

	if errorCount > 0 || int64(created) != successCount {
		fmt.Printf("\nWarning: %d errors, %d rows created for %d successes\n", errorCount, created, successCount)
		os.Exit(1)
	}

	fmt.Println("\nLoad test completed successfully!")
}
