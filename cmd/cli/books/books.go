package books

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/avilov/bookshelf/cmd/cli/config"
	"github.com/avilov/bookshelf/cmd/cli/output"
	"github.com/spf13/cobra"
)

// ==========================
// Init Books
// ==========================
func InitBooks(rootCmd *cobra.Command) {

	booksCmd := &cobra.Command{
		Use:   "books",
		Short: "Manage books",
	}

	booksCmd.AddCommand(
		listBooksCmd(),
		getBookCmd(),
		addBookCmd(),
		updateBookCmd(),
		deleteBookCmd(),
	)

	rootCmd.AddCommand(booksCmd)
}

// ==========================
// LIST
// ==========================
func listBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Run: func(cmd *cobra.Command, args []string) {

			resp, err := http.Get(config.APIURL() + "/books")
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var books []struct {
				ID            int    `json:"id"`
				Title         string `json:"title"`
				Author        string `json:"author"`
				PublishedDate string `json:"published_date"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
				fmt.Println(err)
				return
			}

			rows := make([][]interface{}, 0, len(books))
			for _, b := range books {
				rows = append(rows, []interface{}{b.ID, b.Title, b.Author, b.PublishedDate})
			}
			output.RenderTable([]string{"ID", "Title", "Author", "Published"}, rows)
		},
	}
}

// ==========================
// GET
// ==========================
func getBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			resp, err := http.Get(config.APIURL() + "/books/" + args[0])
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			printJSON(resp.Body)
		},
	}
}

// ==========================
// ADD
// ==========================
func addBookCmd() *cobra.Command {

	var title string
	var author string
	var published string
	var userID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Run: func(cmd *cobra.Command, args []string) {

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			form := url.Values{
				"title":          {title},
				"author":         {author},
				"published_date": {published},
				"user_id":        {userID},
			}

			resp, err := doForm("POST", "/books", form, token)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			printJSON(resp.Body)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "book author")
	cmd.Flags().StringVar(&published, "published", "", "published date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&userID, "user-id", "", "owner user id")

	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateBookCmd() *cobra.Command {

	var title string
	var author string
	var published string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a book (only supplied fields change)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			form := url.Values{
				"title":          {title},
				"author":         {author},
				"published_date": {published},
			}

			resp, err := doForm("PUT", "/books/"+args[0], form, token)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			printJSON(resp.Body)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&author, "author", "", "new author")
	cmd.Flags().StringVar(&published, "published", "", "new published date (YYYY-MM-DD)")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			resp, err := doForm("DELETE", "/books/"+args[0], nil, token)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			printJSON(resp.Body)
		},
	}
}

func doForm(method, path string, form url.Values, token string) (*http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return http.DefaultClient.Do(req)
}

func printJSON(r io.Reader) {
	var out any
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		fmt.Println(err)
		return
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
