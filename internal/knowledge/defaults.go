package knowledge

// defaultAlgorithms returns the built-in algorithm catalog, written when no
// algorithms.json exists yet.
func defaultAlgorithms() []Entry {
	return []Entry{
		{
			ID:           "two-pointer",
			Name:         "Two Pointers",
			Category:     CategoryAlgorithms,
			Description:  "Move two pointers across an array or linked list, typically to find pairs or subarrays without nested scans.",
			Applications: []string{"arrays", "linked lists", "strings"},
			Complexity:   "time O(n), space O(1)",
			Example:      "Two-sum on a sorted array",
			Keywords:     []string{"two pointer", "pair", "sliding", "left right"},
		},
		{
			ID:           "sliding-window",
			Name:         "Sliding Window",
			Category:     CategoryAlgorithms,
			Description:  "Maintain a moving window over a sequence and update an aggregate incrementally as the window grows and shrinks.",
			Applications: []string{"subarrays", "substrings", "streams"},
			Complexity:   "time O(n), space O(1) or O(k)",
			Example:      "Longest substring without repeating characters",
			Keywords:     []string{"sliding window", "subarray", "substring", "window"},
		},
		{
			ID:           "binary-search",
			Name:         "Binary Search",
			Category:     CategoryAlgorithms,
			Description:  "Halve the search space of a sorted collection, or of a monotonic answer space, on every step.",
			Applications: []string{"sorted arrays", "search", "rotated arrays", "answer bisection"},
			Complexity:   "time O(log n), space O(1)",
			Example:      "Find a target position in a sorted array",
			Keywords:     []string{"binary search", "bisect", "sorted", "logarithmic"},
		},
		{
			ID:           "dynamic-programming",
			Name:         "Dynamic Programming",
			Category:     CategoryAlgorithms,
			Description:  "Decompose a problem into overlapping subproblems and memoize their solutions to avoid recomputation.",
			Applications: []string{"optimization", "counting", "min/max problems"},
			Complexity:   "depends on state count and transitions",
			Example:      "Knapsack, longest common subsequence",
			Keywords:     []string{"dynamic programming", "dp", "memoization", "optimal substructure"},
		},
		{
			ID:           "greedy",
			Name:         "Greedy",
			Category:     CategoryAlgorithms,
			Description:  "Take the locally best choice at every step; correct when the problem has the greedy-choice property.",
			Applications: []string{"interval problems", "scheduling", "graph algorithms"},
			Complexity:   "typically time O(n log n), space O(1)",
			Example:      "Interval scheduling, Huffman coding",
			Keywords:     []string{"greedy", "local optimum", "interval", "exchange argument"},
		},
		{
			ID:           "depth-first-search",
			Name:         "Depth-First Search",
			Category:     CategoryAlgorithms,
			Description:  "Explore a graph or tree as far as possible along each branch before backtracking, usually via recursion or an explicit stack.",
			Applications: []string{"trees", "graphs", "connectivity", "backtracking"},
			Complexity:   "time O(V+E), space O(V)",
			Example:      "Number of islands in a grid",
			Keywords:     []string{"dfs", "depth first", "traversal", "recursion", "backtracking"},
		},
		{
			ID:           "breadth-first-search",
			Name:         "Breadth-First Search",
			Category:     CategoryAlgorithms,
			Description:  "Explore a graph level by level using a queue; finds shortest paths in unweighted graphs.",
			Applications: []string{"graphs", "shortest path", "level order"},
			Complexity:   "time O(V+E), space O(V)",
			Example:      "Word ladder shortest transformation",
			Keywords:     []string{"bfs", "breadth first", "queue", "shortest path", "level order"},
		},
		{
			ID:           "backtracking",
			Name:         "Backtracking",
			Category:     CategoryAlgorithms,
			Description:  "Build candidates incrementally and abandon a partial candidate as soon as it cannot lead to a valid solution.",
			Applications: []string{"permutations", "combinations", "constraint satisfaction"},
			Complexity:   "exponential in the worst case, pruned in practice",
			Example:      "N-queens, subset generation",
			Keywords:     []string{"backtracking", "permutation", "combination", "prune", "search tree"},
		},
	}
}

// defaultDataStructures returns the built-in data-structure catalog.
func defaultDataStructures() []Entry {
	return []Entry{
		{
			ID:           "hash-table",
			Name:         "Hash Table",
			Category:     CategoryDataStructures,
			Description:  "Key-value storage with expected O(1) lookup, insertion, and deletion; the default tool for counting and membership.",
			Applications: []string{"lookup", "counting", "caching", "deduplication"},
			Complexity:   "insert O(1), lookup O(1), delete O(1) expected",
			Example:      "Two-sum complement lookup",
			Keywords:     []string{"hash table", "hash map", "dictionary", "map", "set"},
		},
		{
			ID:           "heap",
			Name:         "Heap / Priority Queue",
			Category:     CategoryDataStructures,
			Description:  "Tree-shaped structure giving O(1) access to the minimum or maximum element and O(log n) insertion and removal.",
			Applications: []string{"top-k problems", "scheduling", "merging sorted streams"},
			Complexity:   "insert O(log n), peek O(1), pop O(log n)",
			Example:      "Kth largest element in a stream",
			Keywords:     []string{"heap", "priority queue", "min heap", "max heap", "top k"},
		},
		{
			ID:           "stack",
			Name:         "Stack",
			Category:     CategoryDataStructures,
			Description:  "Last-in-first-out collection; the natural fit for matching, nesting, and monotonic-sequence problems.",
			Applications: []string{"parsing", "nesting", "monotonic sequences", "undo"},
			Complexity:   "push O(1), pop O(1), peek O(1)",
			Example:      "Valid parentheses, largest rectangle in histogram",
			Keywords:     []string{"stack", "lifo", "monotonic stack", "parentheses"},
		},
		{
			ID:           "queue",
			Name:         "Queue",
			Category:     CategoryDataStructures,
			Description:  "First-in-first-out collection used for level-order traversals and producer/consumer pipelines.",
			Applications: []string{"bfs", "level order", "buffering"},
			Complexity:   "enqueue O(1), dequeue O(1)",
			Example:      "Binary tree level-order traversal",
			Keywords:     []string{"queue", "fifo", "deque", "level order"},
		},
		{
			ID:           "tree",
			Name:         "Tree",
			Category:     CategoryDataStructures,
			Description:  "Hierarchical structure of nodes and edges; balanced variants keep search, insert, and delete logarithmic.",
			Applications: []string{"hierarchies", "search", "ordered data"},
			Complexity:   "insert O(log n), search O(log n), delete O(log n) when balanced",
			Example:      "Validate a binary search tree",
			Keywords:     []string{"tree", "binary tree", "bst", "balanced tree", "traversal"},
		},
		{
			ID:           "linked-list",
			Name:         "Linked List",
			Category:     CategoryDataStructures,
			Description:  "Nodes chained by pointers; O(1) insertion and removal at known positions at the cost of O(n) access.",
			Applications: []string{"sequential data", "in-place rearrangement", "lru caches"},
			Complexity:   "insert O(1), access O(n)",
			Example:      "Reverse a linked list, detect a cycle",
			Keywords:     []string{"linked list", "node", "pointer", "fast slow", "cycle"},
		},
		{
			ID:           "trie",
			Name:         "Trie",
			Category:     CategoryDataStructures,
			Description:  "Prefix tree keyed by characters; shares common prefixes so prefix queries cost the length of the key.",
			Applications: []string{"prefix search", "autocomplete", "word dictionaries"},
			Complexity:   "insert O(L), search O(L) for key length L",
			Example:      "Implement a prefix dictionary with wildcard search",
			Keywords:     []string{"trie", "prefix tree", "autocomplete", "dictionary"},
		},
	}
}
