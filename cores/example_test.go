/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cores_test

import (
	"fmt"

	"github.com/vogo/pixellink/cores"
)

func ExampleEncode() {
	for _, id := range []int64{1, 61, 62, 12345678} {
		fmt.Println(id, cores.Encode(id))
	}

	// Output:
	// 1 1
	// 61 Z
	// 62 10
	// 12345678 PNFQ
}

func ExampleDecode() {
	id, err := cores.Decode("PNFQ")
	fmt.Println(id, err)

	_, err = cores.Decode("01")
	fmt.Println(err)

	// Output:
	// 12345678 <nil>
	// invalid short code encoding: leading zero in "01"
}
