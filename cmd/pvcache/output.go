/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"

	"github.com/pvcache/pvcache-go/codec"
	"github.com/pvcache/pvcache-go/jsonx"
	"github.com/pvcache/pvcache-go/result"
)

// printResult prints r as the {"result": ...} envelope, applying
// --aggregate first if requested and r has anything left to accumulate.
func printResult(r result.Result) {
	if aggregate && r.Shape() != result.ShapeScalar {
		accumulated, err := result.Accumulate(r, result.ShapeScalar)
		if err != nil {
			printError(err)
			return
		}
		r = accumulated
	}

	body, err := codec.Encode(r)
	if err != nil {
		printError(err)
		return
	}
	fmt.Println(string(body))
}

// printOK prints a plain {"result": "ok"} envelope for write-path commands
// that have nothing to return but success.
func printOK() {
	fmt.Println(`{"result": "ok"}`)
}

// printError prints {"error": "..."}, matching the upstream CLI's
// convention of reporting failure on stdout with a zero exit code.
func printError(err error) {
	body, marshalErr := jsonx.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		fmt.Printf(`{"error": %q}`+"\n", err.Error())
		return
	}
	fmt.Println(string(body))
}
