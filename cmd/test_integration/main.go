package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/agenthands/bore/internal/core/facts"
	"github.com/agenthands/bore/internal/vocabulary"
)

const baseURL = "http://localhost:8080"

var (
	foafName    = vocabulary.FOAFName.IRI()
	foafMade    = vocabulary.FOAFMade.IRI()
	rdfType     = vocabulary.RDFType.IRI()
	musicGroup  = vocabulary.MOMusicGroup.IRI()
	myspace     = vocabulary.MOMyspace.IRI()
	dcTitle     = vocabulary.DCTitle.IRI()
	expectedFct = facts.VerbProfile + " www.myspace.com/smoketest"
)

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	artist := fmt.Sprintf("http://www.bbc.co.uk/music/artists/smoke-%d#artist", time.Now().Unix())
	record := artist + "/record"

	// 1. Load triples
	fmt.Println("1. Loading triples...")
	payload := map[string]interface{}{
		"triples": []map[string]interface{}{
			{"subject": artist, "predicate": foafName, "object": "Smoke Test", "literal": true},
			{"subject": artist, "predicate": rdfType, "object": musicGroup},
			{"subject": artist, "predicate": myspace, "object": "http://www.myspace.com/smoketest"},
			{"subject": artist, "predicate": foafMade, "object": record},
			{"subject": record, "predicate": dcTitle, "object": "First Light", "literal": true},
		},
	}

	if _, ok := sendRequest("POST", "/triples", payload); !ok {
		fmt.Println("FAILED: Load triples")
		os.Exit(1)
	}
	fmt.Println("PASSED: Load triples")

	// 2. Facts
	fmt.Println("2. Fetching facts...")
	body, ok := sendRequest("GET", "/facts?uri="+url.QueryEscape(artist), nil)
	if !ok {
		fmt.Println("FAILED: Facts")
		os.Exit(1)
	}
	if !strings.Contains(body, expectedFct) || !strings.Contains(body, "has released First Light") {
		fmt.Printf("FAILED: Facts missing expected sentences: %s\n", body)
		os.Exit(1)
	}
	fmt.Println("PASSED: Facts")
}

func sendRequest(method, endpoint string, payload interface{}) (string, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return "", false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return "", false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return string(respBody), true
}
