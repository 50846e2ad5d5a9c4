// Command libragbooster builds a C shared library exposing MLE importance
// learning to non-Go callers, the Go analog of the reference
// implementation's PyO3 Python extension: foreign code passes a JSON
// request, gets a JSON response back, through two exported C functions.
//
// Build with:
//
//	go build -buildmode=c-shared -o libragbooster.so ./cmd/libragbooster
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/amsterdata/ragbooster/cbinding"
)

// ragbooster_learn_importance runs cbinding.LearnImportance against a
// NUL-terminated JSON request and returns a newly allocated C string
// holding the JSON response. The caller owns the returned pointer and must
// release it with ragbooster_free_string.
//
//export ragbooster_learn_importance
func ragbooster_learn_importance(request *C.char) *C.char {
	response := cbinding.LearnImportance(C.GoString(request))

	return C.CString(response)
}

// ragbooster_free_string releases a string previously returned by
// ragbooster_learn_importance. Passing any other pointer is undefined
// behavior, exactly as with C.free.
//
//export ragbooster_free_string
func ragbooster_free_string(str *C.char) {
	C.free(unsafe.Pointer(str))
}

func main() {}
